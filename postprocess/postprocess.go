// Package postprocess applies transformations to rendered content before it
// is written. The engine runs its chain on every generated file; a failing
// processor aborts generation.
//
// Example usage:
//
//	chain := postprocess.NewChain()
//	chain.Add(processors.NewGoSource())
//	out, err := chain.Process("assets_gen.go", rendered)
package postprocess

import "fmt"

// Processor transforms the content of a file.
// Processors return the content unchanged for file types they do not handle.
type Processor interface {
	ProcessContent(filePath string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(filePath string, content []byte) ([]byte, error)

func (f ProcessorFunc) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return f(filePath, content)
}

// Chain runs processors in the order they were added.
type Chain struct {
	processors []Processor
}

func NewChain(processors ...Processor) *Chain {
	return &Chain{
		processors: append([]Processor(nil), processors...),
	}
}

func (c *Chain) Add(processor Processor) {
	c.processors = append(c.processors, processor)
}

// Process stops at the first failing processor.
func (c *Chain) Process(filePath string, content []byte) ([]byte, error) {
	result := content
	for i, processor := range c.processors {
		processed, err := processor.ProcessContent(filePath, result)
		if err != nil {
			return nil, fmt.Errorf("processor %d failed for %s: %w", i, filePath, err)
		}
		result = processed
	}
	return result, nil
}

func (c *Chain) HasProcessors() bool {
	return len(c.processors) > 0
}
