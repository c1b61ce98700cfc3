// Package workers contains background jobs run by the server process.
package workers
