package model

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Extra хранит поля записи, которых нет в структуре.
// Они читаются и записываются обратно без изменений.
type Extra map[string]json.RawMessage

var knownKeysCache sync.Map // reflect.Type -> map[string]struct{}

func knownKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := knownKeysCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			keys[name] = struct{}{}
		}
	}

	knownKeysCache.Store(t, keys)
	return keys
}

// decodeWithExtra раскладывает JSON по полям target, а остаток сохраняет в extra
func decodeWithExtra(data []byte, target any, extra *Extra) error {
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key := range knownKeys(reflect.TypeOf(target).Elem()) {
		delete(raw, key)
	}

	if len(raw) == 0 {
		*extra = nil
		return nil
	}
	*extra = raw
	return nil
}

// encodeWithExtra сериализует v и дописывает неизвестные поля
func encodeWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := marshalNoEscape(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, exists := merged[key]; !exists {
			merged[key] = value
		}
	}

	return marshalNoEscape(merged)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
