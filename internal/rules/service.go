package rules

import (
	"fmt"
	"strings"

	"github.com/grid-books/grid/internal/errs"
	"github.com/grid-books/grid/internal/model"
	"github.com/grid-books/grid/internal/storage"
)

// Service manages the stored rule set and tax codes.
type Service struct {
	store storage.Store
}

// NewService creates a Service backed by store.
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// Add validates and persists a new rule, returning it with its assigned
// id.
func (s *Service) Add(r model.ImportRule) (model.ImportRule, error) {
	if err := s.validate(r); err != nil {
		return model.ImportRule{}, err
	}
	if err := s.store.CreateRule(&r); err != nil {
		return model.ImportRule{}, fmt.Errorf("creating rule: %w", err)
	}
	return r, nil
}

// Update rewrites an existing rule under the same validation as Add.
func (s *Service) Update(r model.ImportRule) error {
	if err := s.validate(r); err != nil {
		return err
	}
	return s.store.UpdateRule(r)
}

// Delete removes one rule by id.
func (s *Service) Delete(id int64) error {
	return s.store.DeleteRule(id)
}

// List returns every rule in id order.
func (s *Service) List() ([]model.ImportRule, error) {
	return s.store.Rules()
}

func (s *Service) validate(r model.ImportRule) error {
	if strings.TrimSpace(r.Keyword) == "" {
		return &errs.ValidationError{Field: "keyword", Msg: "rule keyword is required"}
	}
	a, err := s.store.AccountByName(r.AccountName)
	if err != nil {
		return err
	}
	if a.Kind != model.KindPosting {
		return &errs.ConstraintError{Msg: fmt.Sprintf("rule target %s is a total account", a.Name)}
	}
	if r.TaxCode != "" {
		if _, err := s.store.TaxCodeByCode(r.TaxCode); err != nil {
			return err
		}
	}
	return nil
}
