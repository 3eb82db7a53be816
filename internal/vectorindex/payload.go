package vectorindex

import "encoding/json"

func encodePayload(p map[string]string) ([]byte, error) {
	if p == nil {
		p = map[string]string{}
	}
	return json.Marshal(p)
}

func decodePayload(b []byte) (map[string]string, error) {
	out := map[string]string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
