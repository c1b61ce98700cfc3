package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		ClientDB struct {
			Path string `json:"path"`
		} `json:"client_db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		LogPath        string   `json:"log_path"`
	} `json:"adapter,omitempty"`

	Sync struct {
		AutoSync     bool     `json:"auto_sync"`
		Interval     Duration `json:"interval"`
		BatchSize    int      `json:"batch_size"`
		MaxRetries   int      `json:"max_retries"`
		Network      string   `json:"network"`
		SyncSessions bool     `json:"sync_sessions"`
		FlushTimeout Duration `json:"flush_timeout"`
	} `json:"sync,omitempty"`

	Workers struct {
		PurgeSchedule      string   `json:"purge_schedule"`
		TombstoneRetention Duration `json:"tombstone_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  jsonCfg.Auth.TokenSignKey,
			TokenIssuer:   jsonCfg.Auth.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.Auth.TokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			ClientDB: ClientDB{
				Path: jsonCfg.Storage.ClientDB.Path,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			LogPath:        jsonCfg.Adapter.LogPath,
		},
		Sync: Sync{
			AutoSync:     jsonCfg.Sync.AutoSync,
			Interval:     time.Duration(jsonCfg.Sync.Interval),
			BatchSize:    jsonCfg.Sync.BatchSize,
			MaxRetries:   jsonCfg.Sync.MaxRetries,
			Network:      NetworkType(jsonCfg.Sync.Network),
			SyncSessions: jsonCfg.Sync.SyncSessions,
			FlushTimeout: time.Duration(jsonCfg.Sync.FlushTimeout),
		},
		Workers: Workers{
			PurgeSchedule:      jsonCfg.Workers.PurgeSchedule,
			TombstoneRetention: time.Duration(jsonCfg.Workers.TombstoneRetention),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
