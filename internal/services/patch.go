package services

import "encoding/json"

// Keys a client can never write through a patch.
var immutableKeys = []string{"id", "createdAt", "updatedAt"}

// applyPatch decodes patch onto dst. Top-level keys present in patch replace
// the current value wholesale: for each such key listed in resets the field is
// cleared first so nested objects are not merged.
func applyPatch(patch []byte, dst interface{}, resets map[string]func()) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(patch, &keys); err != nil || keys == nil {
		return Invalid("request body must be a JSON object")
	}
	for _, key := range immutableKeys {
		delete(keys, key)
	}
	for key, reset := range resets {
		if _, ok := keys[key]; ok {
			reset()
		}
	}

	cleaned, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(cleaned, dst); err != nil {
		return Invalid(err.Error())
	}
	return nil
}
