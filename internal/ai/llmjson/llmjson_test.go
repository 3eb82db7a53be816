package llmjson

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"skills\":[\"Go\"]}\n```", `{"skills":["Go"]}`},
		{"leading prose", "Sure! Here you go: [1,2,3] hope it helps", `[1,2,3]`},
		{"brace inside string", `{"q":"what is {x}?"} trailing`, `{"q":"what is {x}?"}`},
		{"escaped quote", `{"q":"say \"}\""}`, `{"q":"say \"}\""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Extract(tc.reply)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Extract = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestExtractNoJSON(t *testing.T) {
	for _, reply := range []string{"", "no json here", `{"unterminated": 1`} {
		if _, err := Extract(reply); !errors.Is(err, ErrNoJSON) {
			t.Errorf("Extract(%q) err = %v", reply, err)
		}
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Skills []string `json:"skills"`
	}
	if err := Decode("```\n{\"skills\":[\"Go\",\"SQL\"]}\n```", &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Skills) != 2 {
		t.Fatalf("skills = %v", out.Skills)
	}
}
