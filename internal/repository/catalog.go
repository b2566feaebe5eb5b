package repository

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/multierr"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
	ErrEmptyCatalog  = errors.New("catalog has no topics")
)

// CatalogRepository provides read-only access to quiz topics and their questions.
// The catalog is loaded once and never mutated afterwards, so it needs no locking.
type CatalogRepository struct {
	topics []string
	byName map[string][]entities.Question
}

// NewCatalogRepository loads and validates the catalog from a JSON file.
func NewCatalogRepository(path string) (*CatalogRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var wrapper struct {
		Topics []entities.Topic `json:"topics"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	return NewCatalogFromTopics(wrapper.Topics)
}

// NewCatalogFromTopics validates topics and builds a catalog keeping their order.
func NewCatalogFromTopics(topics []entities.Topic) (*CatalogRepository, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	r := &CatalogRepository{
		topics: make([]string, 0, len(topics)),
		byName: make(map[string][]entities.Question, len(topics)),
	}
	for _, t := range topics {
		questions := make([]entities.Question, len(t.Questions))
		for i, q := range t.Questions {
			q.Options = append([]string(nil), q.Options...)
			questions[i] = q
		}

		r.topics = append(r.topics, t.Name)
		r.byName[t.Name] = questions
	}

	return r, nil
}

// Topics returns topic names in catalog order.
func (r *CatalogRepository) Topics() []string {
	return append([]string(nil), r.topics...)
}

// Questions returns the ordered questions of a topic.
// The returned slice is shared and must not be modified.
func (r *CatalogRepository) Questions(topic string) ([]entities.Question, error) {
	questions, ok := r.byName[topic]
	if !ok {
		return nil, ErrTopicNotFound
	}
	return questions, nil
}

func validateTopics(topics []entities.Topic) error {
	if len(topics) == 0 {
		return ErrEmptyCatalog
	}

	var errs error
	seen := make(map[string]struct{}, len(topics))

	for ti, t := range topics {
		if t.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("topic #%d: empty name", ti))
		}
		if _, dup := seen[t.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("topic %q: duplicate name", t.Name))
		}
		seen[t.Name] = struct{}{}

		if len(t.Questions) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("topic %q: no questions", t.Name))
		}

		for qi, q := range t.Questions {
			if q.Text == "" {
				errs = multierr.Append(errs, fmt.Errorf("topic %q question #%d: empty text", t.Name, qi))
			}
			if len(q.Options) < 2 {
				errs = multierr.Append(errs, fmt.Errorf("topic %q question #%d: need at least 2 options, got %d", t.Name, qi, len(q.Options)))
				continue
			}
			if !q.ValidOption(q.CorrectIndex) {
				errs = multierr.Append(errs, fmt.Errorf("topic %q question #%d: answer %d out of range [0, %d)", t.Name, qi, q.CorrectIndex, len(q.Options)))
			}
		}
	}

	return errs
}
