package panel

import (
	"encoding/json"
	"fmt"

	"github.com/bonuseducation/crm_bot/internal/model"
)

// applyPatch накладывает JSON поверх записи: отсутствующие в теле поля не меняются,
// а неизвестные ключи дописываются к уже сохранённым.
func applyPatch(body []byte, target json.Unmarshaler, extra *model.Extra) error {
	saved := *extra
	if err := target.UnmarshalJSON(body); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	*extra = mergeExtra(saved, *extra)
	return nil
}

func mergeExtra(saved, patch model.Extra) model.Extra {
	if len(saved) == 0 && len(patch) == 0 {
		return nil
	}
	out := make(model.Extra, len(saved)+len(patch))
	for k, v := range saved {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// patchKeys возвращает ключи верхнего уровня из тела запроса
func patchKeys(body []byte) (map[string]json.RawMessage, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return keys, nil
}
