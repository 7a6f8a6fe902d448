// Package document reads and writes YAML documents containing slots.
//
// yaml.v3 cannot decode into an interface, so decoding is two steps: the
// YAML pass stores each slot's label and keeps its value node aside, then
// Hydrate walks the decoded graph and builds every slot's value with the
// registry entry named by its label.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/polyslot/internal/dispatch"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/registry"
	"github.com/zjrosen/polyslot/internal/tracing"
)

// ErrNotPointer is returned when the decode target is not a non-nil pointer.
var ErrNotPointer = errors.New("document target must be a non-nil pointer")

var tracer = otel.Tracer("github.com/zjrosen/polyslot/internal/document")

// Load reads path and decodes it into into.
func Load(ctx context.Context, path string, into any, reg *registry.Registry) error {
	_, span := tracer.Start(ctx, tracing.SpanDocumentLoad, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentPath, path),
	))
	defer span.End()

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the document the user opened
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return fmt.Errorf("reading document: %w", err)
	}

	slots, err := decode(data, into, reg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		log.ErrorErr(log.CatDocument, "document load failed", err, "path", path)
		return err
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrDocumentBytes, len(data)),
		attribute.Int(tracing.AttrDocumentSlots, slots),
	)
	log.Info(log.CatDocument, "document loaded", "path", path, "slots", slots)
	return nil
}

// Decode parses data into into and hydrates its slots.
func Decode(data []byte, into any, reg *registry.Registry) error {
	_, err := decode(data, into, reg)
	return err
}

func decode(data []byte, into any, reg *registry.Registry) (int, error) {
	rv := reflect.ValueOf(into)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, fmt.Errorf("%w: got %T", ErrNotPointer, into)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return 0, fmt.Errorf("parsing document: %w", err)
	}
	return Hydrate(into, reg)
}

// Hydrate builds the value of every slot reachable from v and returns how
// many slots it visited. Slots inside hydrated values are visited too.
func Hydrate(v any, reg *registry.Registry) (int, error) {
	h := hydrator{reg: reg}
	if err := h.walk(reflect.ValueOf(v), ""); err != nil {
		return h.slots, err
	}
	return h.slots, nil
}

type hydrator struct {
	reg   *registry.Registry
	slots int
}

func (h *hydrator) walk(v reflect.Value, path string) error {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return h.walk(v.Elem(), path)

	case reflect.Struct:
		if v.CanAddr() {
			if slot, ok := v.Addr().Interface().(dispatch.Polymorphic); ok {
				h.slots++
				if err := slot.Hydrate(h.reg); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				return h.walk(v.FieldByName("Value"), join(path, "Value"))
			}
		}
		t := v.Type()
		for i := range t.NumField() {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := h.walk(v.Field(i), join(path, t.Field(i).Name)); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			if err := h.walk(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			// Map values are not addressable: hydrate a copy and store it back.
			elem := reflect.New(v.Type().Elem()).Elem()
			elem.Set(iter.Value())
			if err := h.walk(elem, fmt.Sprintf("%s[%v]", path, iter.Key())); err != nil {
				return err
			}
			v.SetMapIndex(iter.Key(), elem)
		}
	}
	return nil
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// Encode marshals v with two-space indentation.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes v and replaces path with it atomically.
func Save(ctx context.Context, path string, v any) error {
	_, span := tracer.Start(ctx, tracing.SpanDocumentSave, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentPath, path),
	))
	defer span.End()

	data, err := Encode(v)
	if err == nil {
		err = writeAtomic(path, data)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		log.ErrorErr(log.CatDocument, "document save failed", err, "path", path)
		return err
	}

	span.SetAttributes(attribute.Int(tracing.AttrDocumentBytes, len(data)))
	log.Info(log.CatDocument, "document saved", "path", path, "bytes", len(data))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // G302: documents are regular user files
		return fmt.Errorf("writing document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing document: %w", err)
	}
	return nil
}
