package tools

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	schemaOnce     sync.Once
	compiledSchema map[string]*gojsonschema.Schema
)

// compileSchemas compiles every tool's input schema once. The schemas are
// package constants, so a compilation failure is a programming error.
func compileSchemas() {
	compiledSchema = make(map[string]*gojsonschema.Schema, len(toolSchemas))
	for name, raw := range toolSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid input schema for tool '%s': %v", name, err))
		}
		compiledSchema[name] = schema
	}
}

// validateArgs checks a tool call's arguments against the trusted schema
// before any handler or model work happens.
func validateArgs(name string, args []byte) error {
	schemaOnce.Do(compileSchemas)

	schema, ok := compiledSchema[name]
	if !ok {
		return nil
	}
	if len(args) == 0 {
		args = []byte(`{}`)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return fmt.Errorf("argument validation failed for tool '%s': %w", name, err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("invalid arguments for tool '%s': %s", name, strings.Join(details, "; "))
	}
	return nil
}
