package translate

import "testing"

func TestExpandSlang(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no slang", input: "Saya lapar", want: "Saya lapar"},
		{name: "go for gi", input: "Aku nak gi shopping", want: "Aku nak go shopping"},
		{name: "single token", input: "Dia tanya pasal kerja", want: "Dia tanya about kerja"},
		{name: "particle dropped", input: "Jom gi makan lah", want: "Jom go makan"},
		{name: "several tokens", input: "tak macam tu kan", want: "not like tu right"},
		{name: "whitespace collapsed", input: "  dekat   rumah ", want: "at rumah"},
		{name: "only a particle", input: "lah", want: ""},
		{name: "case sensitive", input: "Tak apa", want: "Tak apa"},
		{name: "substring untouched", input: "gila", want: "gila"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandSlang(tt.input); got != tt.want {
				t.Errorf("ExpandSlang(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
