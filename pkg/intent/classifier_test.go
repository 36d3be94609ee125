package intent

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "plain question",
			text: "What is machine learning?",
			want: IntentGenericText,
		},
		{
			name: "image keyword",
			text: "show me images of cats",
			want: IntentImageRequest,
		},
		{
			name: "image keyword capitalized",
			text: "Generate Image of a sunset",
			want: IntentImageRequest,
		},
		{
			name: "diagram counts as image",
			text: "draw a diagram of a binary tree",
			want: IntentImageRequest,
		},
		{
			name: "faq trigger fees",
			text: "what are the fees at jisce",
			want: IntentStaticFAQ,
		},
		{
			name: "faq trigger location",
			text: "where is jisce located",
			want: IntentStaticFAQ,
		},
		{
			name: "faq trigger why jisce",
			text: "Why JISCE over other colleges?",
			want: IntentStaticFAQ,
		},
		{
			name: "image beats faq when both match",
			text: "show me a picture of the jisce location",
			want: IntentImageRequest,
		},
		{
			name: "empty string",
			text: "",
			want: IntentGenericText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractImageTerm(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "strips leading filler",
			text: "show me images of cats",
			want: "cats",
		},
		{
			name: "generate phrasing",
			text: "generate an image of a mountain lake",
			want: "mountain lake",
		},
		{
			name: "stop words removed only as whole words",
			text: "photos of the theater",
			want: "theater",
		},
		{
			name: "trailing punctuation ignored",
			text: "show me pictures of dogs!",
			want: "dogs!",
		},
		{
			name: "only filler falls back to default",
			text: "show me images",
			want: DefaultImageTerm,
		},
		{
			name: "empty falls back to default",
			text: "   ",
			want: DefaultImageTerm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractImageTerm(tt.text); got != tt.want {
				t.Errorf("ExtractImageTerm(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
