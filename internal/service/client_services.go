package service

import (
	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/srs"
	"github.com/savichev/memodeck/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	EntityService  ClientEntityService
	PushService    ClientPushService
	PullService    ClientPullService
	Resolver       ConflictResolver
	Orchestrator   SyncOrchestrator
	StatusReporter StatusReporter
	SyncJob        ClientSyncJob
}

func NewClientServices(
	storages *store.ClientStorages,
	transport adapter.SyncTransport,
	connectivity adapter.Connectivity,
	cfg config.ClientSync,
	logger *logger.Logger,
) *ClientServices {
	authSvc := NewClientAuthService(transport, logger)
	entitySvc := NewClientEntityService(storages.EntityRepository, srs.NewSM2Scheduler(), cfg, logger)
	pushSvc := NewClientPushService(storages, transport, cfg, logger)
	pullSvc := NewClientPullService(storages.EntityRepository, transport, logger)
	resolver := NewFieldLWWResolver(storages.EntityRepository, logger)
	orchestrator := NewSyncOrchestrator(pushSvc, pullSvc, resolver, connectivity, cfg, logger)

	return &ClientServices{
		AuthService:    authSvc,
		EntityService:  entitySvc,
		PushService:    pushSvc,
		PullService:    pullSvc,
		Resolver:       resolver,
		Orchestrator:   orchestrator,
		StatusReporter: NewStatusReporter(storages.EntityRepository, orchestrator, connectivity, logger),
		SyncJob:        NewClientSyncJob(orchestrator, pushSvc, storages.QueueRepository, connectivity, logger),
	}
}
