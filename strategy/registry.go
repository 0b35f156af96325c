package strategy

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/teranos/xmldoc/config"
	"github.com/teranos/xmldoc/docbuilder"
	"github.com/teranos/xmldoc/errors"
	"github.com/teranos/xmldoc/logger"
	"github.com/teranos/xmldoc/syntax"
)

// Registry routes declarations to the strategy registered for their kind.
type Registry struct {
	mu         sync.RWMutex
	strategies map[syntax.Kind]Strategy
	logger     *zap.SugaredLogger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.SugaredLogger) *Registry {
	if log == nil {
		log = logger.Named("strategy")
	}
	return &Registry{
		strategies: make(map[syntax.Kind]Strategy),
		logger:     log,
	}
}

// Register adds s for each of its kinds. A strategy with no kinds, or one
// claiming a kind that is already taken, is rejected and nothing is added.
func (r *Registry) Register(s Strategy) error {
	kinds := s.SupportedKinds()
	if len(kinds) == 0 {
		return errors.Newf("strategy %s supports no declaration kinds", s.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range kinds {
		if existing, ok := r.strategies[k]; ok {
			return errors.Newf("kind %s already handled by strategy %s", k, existing.Name())
		}
	}
	for _, k := range kinds {
		r.strategies[k] = s
		r.logger.Debugw("Registered strategy",
			logger.FieldStrategy, s.Name(),
			logger.FieldKind, k.String())
	}
	return nil
}

// Lookup returns the strategy for kind.
func (r *Registry) Lookup(kind syntax.Kind) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[kind]
	return s, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []syntax.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]syntax.Kind, 0, len(r.strategies))
	for k := range r.strategies {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Apply documents decl with the strategy for its kind. Kinds without one
// fail with an error matching errors.ErrUnsupportedKind.
func (r *Registry) Apply(decl syntax.Declaration) (*docbuilder.Documented, error) {
	s, ok := r.Lookup(decl.Kind())
	if !ok {
		return nil, errors.NewUnsupportedKindError(decl.Kind().String())
	}
	return s.Apply(decl)
}

// NewDefaultRegistry builds the registry described by cfg.
func NewDefaultRegistry(cfg *config.Config, log *zap.SugaredLogger) (*Registry, error) {
	if log == nil {
		log = logger.Named("strategy")
	}

	policy, err := docbuilder.ParsePolicy(cfg.Builder.Existing)
	if err != nil {
		return nil, errors.Wrap(err, "builder.existing")
	}
	builder := docbuilder.New(policy, log.Named("docbuilder"))

	r := NewRegistry(log)
	if cfg.Class.Enabled {
		class := NewClassStrategy(log.Named("class"), cfg.Formatter(), cfg.Class.Summary, builder)
		if err := r.Register(class); err != nil {
			return nil, err
		}
	}
	return r, nil
}
