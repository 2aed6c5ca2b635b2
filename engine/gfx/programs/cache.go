// Package programs caches compiled shader programs by variant.
package programs

import (
	"github.com/hubastard/grove3d/engine/gfx/shaders"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoSource is returned by compilers handed an empty source list.
var ErrNoSource = errors.New("programs: no shader source")

// Program is a linked GPU program.
type Program interface {
	Delete()
}

// Compiler builds a Program from processed stage sources.
type Compiler interface {
	Compile(sources []shaders.Source) (Program, error)
}

// Cache maps ProgramAttributes to compiled programs. Each distinct variant
// is compiled at most once; a failed variant is remembered as nil so a
// broken material does not recompile every frame.
//
// Cache is not safe for concurrent use. It belongs to the render thread.
type Cache struct {
	compiler Compiler
	library  *shaders.Library
	log      logrus.FieldLogger
	programs map[string]Program
}

func NewCache(compiler Compiler, library *shaders.Library, log logrus.FieldLogger) *Cache {
	if library == nil {
		library = shaders.NewLibrary(log)
	}
	return &Cache{
		compiler: compiler,
		library:  library,
		log:      log,
		programs: make(map[string]Program),
	}
}

// GetProgram returns the program for attrs, compiling it on first use.
// It returns nil when the variant cannot be built.
func (c *Cache) GetProgram(attrs shaders.ProgramAttributes) Program {
	key := attrs.Key()
	if p, ok := c.programs[key]; ok {
		c.logger().WithField("program", key).Debug("Program cache hit")
		return p
	}

	p, err := c.build(attrs)
	if err != nil {
		c.logger().WithField("program", key).WithError(err).Error("Failed to create program")
		c.programs[key] = nil
		return nil
	}
	c.logger().WithField("program", key).Info("Created program")
	c.programs[key] = p
	return p
}

func (c *Cache) build(attrs shaders.ProgramAttributes) (Program, error) {
	sources := c.library.GetShaderSource(attrs)
	if len(sources) == 0 {
		return nil, errors.Wrapf(ErrNoSource, "material %s", attrs.Type)
	}
	p, err := c.compiler.Compile(sources)
	if err != nil {
		return nil, errors.Wrapf(err, "compile %s", attrs.Type)
	}
	if p == nil {
		return nil, errors.Errorf("compiler returned no program for %s", attrs.Type)
	}
	return p, nil
}

// Len reports the number of cached variants, failed ones included.
func (c *Cache) Len() int { return len(c.programs) }

// Release deletes every compiled program and empties the cache.
func (c *Cache) Release() {
	for key, p := range c.programs {
		if p != nil {
			p.Delete()
		}
		delete(c.programs, key)
	}
}

func (c *Cache) logger() logrus.FieldLogger { return logger.Or(c.log) }
