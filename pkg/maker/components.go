package maker

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/flowforge/pkg/binding"
	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/dao"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// SearchPaths holds the raw location strings for every contract kind.
// A nil slice means the section is missing and is rejected; an empty,
// non-nil slice searches the native location only.
type SearchPaths struct {
	Actions    []string
	Formatters []string
	Daos       []string
}

// CacheFunc builds the binding cache for one kind.
type CacheFunc func(kind resolver.Kind) (*binding.Cache, error)

// Components is the process-wide set of makers built once at bootstrap.
type Components struct {
	Actions    *Maker[component.Action]
	Formatters *Maker[component.Formatter]
	Daos       *Maker[dao.Dao]

	caches []*binding.Cache
}

// NewComponents parses the search paths and builds one maker per kind.
// Configuration problems wrap resolver.ErrConfiguration.
func NewComponents(registry *resolver.Registry, paths SearchPaths, newCache CacheFunc, opts ...Option) (*Components, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: nil registry", resolver.ErrConfiguration)
	}

	actionLocs, err := parseSection(component.ActionKind, paths.Actions)
	if err != nil {
		return nil, err
	}
	formatterLocs, err := parseSection(component.FormatterKind, paths.Formatters)
	if err != nil {
		return nil, err
	}
	daoLocs, err := parseSection(dao.Kind, paths.Daos)
	if err != nil {
		return nil, err
	}

	c := &Components{}
	actionCache, err := c.cache(newCache, component.ActionKind)
	if err != nil {
		return nil, err
	}
	formatterCache, err := c.cache(newCache, component.FormatterKind)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	daoCache, err := c.cache(newCache, dao.Kind)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.Actions = New[component.Action](component.ActionKind, actionLocs, registry, actionCache, opts...)
	c.Formatters = New[component.Formatter](component.FormatterKind, formatterLocs, registry, formatterCache, opts...)
	c.Daos = New[dao.Dao](dao.Kind, daoLocs, registry, daoCache, opts...)
	return c, nil
}

// Action makes the named action. A miss is an error.
func (c *Components) Action(ctx context.Context, name string) (component.Action, error) {
	return c.Actions.Make(ctx, name)
}

// Formatter makes the named formatter. A miss is not an error: ok is false
// and the caller falls back to its default.
func (c *Components) Formatter(ctx context.Context, name string) (component.Formatter, bool, error) {
	return c.Formatters.MakeOptional(ctx, name)
}

// Dao makes the named DAO without attaching a querier.
func (c *Components) Dao(ctx context.Context, name string) (dao.Dao, error) {
	return c.Daos.Make(ctx, name)
}

// Reset clears the binding caches of every kind.
func (c *Components) Reset(ctx context.Context) error {
	return errors.Join(
		c.Actions.Reset(ctx),
		c.Formatters.Reset(ctx),
		c.Daos.Reset(ctx),
	)
}

// Warm pre-resolves every discoverable name of every kind.
func (c *Components) Warm(ctx context.Context) (int, error) {
	var total int
	var errs []error
	for _, warm := range []func(context.Context) (int, error){
		c.Actions.Warm, c.Formatters.Warm, c.Daos.Warm,
	} {
		n, err := warm(ctx)
		total += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

// Close releases the binding caches.
func (c *Components) Close() error {
	var errs []error
	for _, bc := range c.caches {
		errs = append(errs, bc.Close())
	}
	c.caches = nil
	return errors.Join(errs...)
}

func (c *Components) cache(newCache CacheFunc, kind resolver.Kind) (*binding.Cache, error) {
	bc, err := newCache(kind)
	if err != nil {
		return nil, fmt.Errorf("maker: %s binding cache: %w", kind.Name, err)
	}
	c.caches = append(c.caches, bc)
	return bc, nil
}

func parseSection(kind resolver.Kind, section []string) ([]resolver.Location, error) {
	if section == nil {
		return nil, fmt.Errorf("%w: no search paths configured for %s", resolver.ErrConfiguration, kind.Name)
	}
	locs, err := resolver.ParseLocations(section)
	if err != nil {
		return nil, fmt.Errorf("%s search paths: %w", kind.Name, err)
	}
	return locs, nil
}
