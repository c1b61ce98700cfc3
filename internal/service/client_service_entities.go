// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/srs"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

// clientEntityService implements [ClientEntityService] on top of the local
// SQLite replica. Each mutation bumps the entity version, flips the record to
// pending and snapshots it into the mutation queue, all in one transaction.
type clientEntityService struct {
	entities  store.LocalEntityRepository
	scheduler srs.Scheduler
	cfg       config.ClientSync
	ids       *utils.UUIDGenerator
	logger    *logger.Logger
	now       func() time.Time
}

func NewClientEntityService(entities store.LocalEntityRepository, scheduler srs.Scheduler, cfg config.ClientSync, logger *logger.Logger) ClientEntityService {
	return &clientEntityService{
		entities:  entities,
		scheduler: scheduler,
		cfg:       cfg,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *clientEntityService) CreateDeck(ctx context.Context, userID int64, deck models.Deck) (models.Entity, error) {
	payload, err := deck.Payload()
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return s.create(ctx, userID, models.EntityTypeDeck, payload)
}

func (s *clientEntityService) UpdateDeck(ctx context.Context, userID int64, entityID string, deck models.Deck) (models.Entity, error) {
	payload, err := deck.Payload()
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return s.update(ctx, userID, models.EntityTypeDeck, entityID, payload)
}

func (s *clientEntityService) CreateCard(ctx context.Context, userID int64, card models.Card) (models.Entity, error) {
	if card.EaseFactor == 0 {
		card.EaseFactor = srs.DefaultEaseFactor
	}
	payload, err := card.Payload()
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return s.create(ctx, userID, models.EntityTypeCard, payload)
}

func (s *clientEntityService) UpdateCard(ctx context.Context, userID int64, entityID string, card models.Card) (models.Entity, error) {
	payload, err := card.Payload()
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return s.update(ctx, userID, models.EntityTypeCard, entityID, payload)
}

// RecordReview applies the grade to the card through the scheduler, then
// stores the card update and the new review session as two queued mutations.
func (s *clientEntityService) RecordReview(ctx context.Context, userID int64, cardEntityID string, grade models.ReviewGrade, duration time.Duration) (models.Entity, error) {
	log := logger.FromContext(ctx)

	if !grade.Valid() {
		return models.Entity{}, fmt.Errorf("%w: %d", ErrInvalidGrade, grade)
	}

	cardEntity, err := s.entities.GetEntity(ctx, models.EntityTypeCard, cardEntityID, userID)
	if err != nil {
		return models.Entity{}, err
	}
	if cardEntity.Deleted {
		return models.Entity{}, fmt.Errorf("%w (id=%s)", ErrEntityDeleted, cardEntityID)
	}

	var card models.Card
	if err = cardEntity.DecodePayload(&card); err != nil {
		return models.Entity{}, fmt.Errorf("decode card payload: %w", err)
	}

	now := s.now()
	reviewed := s.scheduler.Review(card, grade, now)

	payload, err := reviewed.Payload()
	if err != nil {
		return models.Entity{}, fmt.Errorf("encode card payload: %w", err)
	}

	updated, err := s.update(ctx, userID, models.EntityTypeCard, cardEntityID, payload)
	if err != nil {
		return models.Entity{}, err
	}

	session := models.ReviewSession{
		CardID:     cardEntityID,
		DeckID:     card.DeckID,
		Grade:      grade,
		ReviewedAt: now,
		DurationMs: duration.Milliseconds(),
		NextDueAt:  *reviewed.DueAt,
	}
	sessionPayload, err := session.Payload()
	if err != nil {
		return models.Entity{}, fmt.Errorf("encode session payload: %w", err)
	}

	if err = s.storeSession(ctx, userID, sessionPayload); err != nil {
		log.Err(err).
			Str("func", "*clientEntityService.RecordReview").
			Str("card_id", cardEntityID).
			Msg("card updated but session record failed")
		return models.Entity{}, err
	}

	return updated, nil
}

// storeSession records a review session. With session sync disabled the
// session is written directly in synced state so it never enters the
// mutation queue; sessions recorded while the flag is off stay local.
func (s *clientEntityService) storeSession(ctx context.Context, userID int64, payload json.RawMessage) error {
	if s.cfg.SyncSessions {
		_, err := s.create(ctx, userID, models.EntityTypeSession, payload)
		return err
	}

	now := s.now()
	return s.entities.SaveRemote(ctx, models.Entity{
		ID:             s.ids.Generate(),
		UserID:         userID,
		Type:           models.EntityTypeSession,
		Version:        1,
		Payload:        payload,
		SyncStatus:     models.SyncStatusSynced,
		LastModifiedAt: now,
		CreatedAt:      now,
	})
}

func (s *clientEntityService) Get(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Entity, error) {
	if !entityType.Valid() {
		return models.Entity{}, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return s.entities.GetEntity(ctx, entityType, entityID, userID)
}

func (s *clientEntityService) List(ctx context.Context, userID int64, entityType models.EntityType) ([]models.Entity, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return s.entities.ListEntities(ctx, entityType, userID, false)
}

func (s *clientEntityService) Delete(ctx context.Context, userID int64, entityType models.EntityType, entityID string) error {
	entity, err := s.entities.GetEntity(ctx, entityType, entityID, userID)
	if err != nil {
		return err
	}
	if entity.Deleted {
		return nil
	}

	entity.Deleted = true
	entity.Version++
	entity.SyncStatus = models.SyncStatusPending
	entity.SyncError = ""
	entity.LastModifiedAt = s.now()

	return s.applyMutation(ctx, entity, models.SyncOperationDelete)
}

func (s *clientEntityService) create(ctx context.Context, userID int64, entityType models.EntityType, payload json.RawMessage) (models.Entity, error) {
	now := s.now()
	entity := models.Entity{
		ID:             s.ids.Generate(),
		UserID:         userID,
		Type:           entityType,
		Version:        1,
		Payload:        payload,
		SyncStatus:     models.SyncStatusPending,
		LastModifiedAt: now,
		CreatedAt:      now,
	}

	if err := s.applyMutation(ctx, entity, models.SyncOperationCreate); err != nil {
		return models.Entity{}, err
	}
	return entity, nil
}

func (s *clientEntityService) update(ctx context.Context, userID int64, entityType models.EntityType, entityID string, payload json.RawMessage) (models.Entity, error) {
	entity, err := s.entities.GetEntity(ctx, entityType, entityID, userID)
	if err != nil {
		return models.Entity{}, err
	}
	if entity.Deleted {
		return models.Entity{}, fmt.Errorf("%w (id=%s)", ErrEntityDeleted, entityID)
	}

	entity.Payload = payload
	entity.Version++
	entity.SyncStatus = models.SyncStatusPending
	entity.SyncError = ""
	entity.LastModifiedAt = s.now()

	if err = s.applyMutation(ctx, entity, models.SyncOperationUpdate); err != nil {
		return models.Entity{}, err
	}
	return entity, nil
}

// applyMutation snapshots the entity into the mutation queue and persists
// both in one transaction, so an acknowledged write is never silently lost.
func (s *clientEntityService) applyMutation(ctx context.Context, entity models.Entity, op models.SyncOperation) error {
	snapshot, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encode queue snapshot: %w", err)
	}

	item := models.MutationQueueItem{
		ID:         s.ids.Generate(),
		Operation:  op,
		EntityType: entity.Type,
		EntityID:   entity.ID,
		Data:       snapshot,
		Timestamp:  s.now(),
	}

	return s.entities.ApplyMutation(ctx, entity, item)
}
