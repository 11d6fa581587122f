package service

import (
	"context"
	"time"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/db"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/alexanderramin/preplock/internal/importer"
	"github.com/alexanderramin/preplock/internal/repository"
)

type sourceService struct {
	sources  repository.SourceRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSourceService(sources repository.SourceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SourceService {
	return &sourceService{sources: sources, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *sourceService) Create(ctx context.Context, ownerID string, schema *importer.SyllabusSchema) (src *domain.Source, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": ownerID}
		if src != nil {
			fields["source_id"] = src.ID
			fields["topic_count"] = len(src.Topics)
		}
		observe(ctx, s.observer, "source.create", startedAt, &err, fields)
	}()

	if ownerID == "" {
		return nil, &domain.ValidationError{Field: "owner_id", Message: "owner is required"}
	}
	if schema == nil {
		return nil, &domain.ValidationError{Field: "schema", Message: "syllabus is required"}
	}
	if errs := importer.ValidateSyllabus(schema); len(errs) > 0 {
		return nil, importer.JoinErrors(errs)
	}
	src, err = importer.Convert(schema, ownerID, startedAt)
	if err != nil {
		return nil, err
	}
	// Source row and topic rows land together or not at all.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSourceRepo(tx).Create(ctx, src)
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (s *sourceService) Get(ctx context.Context, ownerID, id string) (*domain.Source, error) {
	return s.sources.GetByID(ctx, ownerID, id)
}

func (s *sourceService) GetTopics(ctx context.Context, ownerID, id string) ([]domain.Topic, error) {
	return s.sources.GetTopics(ctx, ownerID, id)
}

func (s *sourceService) List(ctx context.Context, ownerID string) ([]*domain.Source, error) {
	return s.sources.ListByOwner(ctx, ownerID)
}

func (s *sourceService) Delete(ctx context.Context, ownerID, id string) (resp *contract.DeleteSourceResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"owner_id": ownerID, "source_id": id}
		if resp != nil {
			fields["roadmaps_deleted"] = resp.RoadmapsDeleted
		}
		observe(ctx, s.observer, "source.delete", startedAt, &err, fields)
	}()

	if ownerID == "" {
		return nil, &domain.ValidationError{Field: "owner_id", Message: "owner is required"}
	}
	// Roadmaps reference the source without a cascade, so they go first in
	// the same transaction. Everything else cascades from the source row.
	var removed int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteSourceRepo(tx).GetByID(ctx, ownerID, id); err != nil {
			return err
		}
		var err error
		if removed, err = repository.NewSQLiteRoadmapRepo(tx).DeleteBySource(ctx, ownerID, id); err != nil {
			return err
		}
		return repository.NewSQLiteSourceRepo(tx).Delete(ctx, ownerID, id)
	})
	if err != nil {
		return nil, err
	}
	return &contract.DeleteSourceResponse{SourceID: id, RoadmapsDeleted: removed}, nil
}
