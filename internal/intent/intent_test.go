package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		input    string
		expected Intent
	}{
		{"hi there", Greeting},
		{"Hello!", Greeting},
		{"good morning", Greeting},
		{"where is the nearest store?", StoreInfo},
		{"what are the shop hours", StoreInfo},
		{"contact for the farm", StoreInfo},
		{"what products do you have", ProductInquiry},
		{"how much does it cost", ProductInquiry},
		{"can I buy bangus here", ProductInquiry},
		{"what towns can I visit", LocationInfo},
		{"tourist attractions please", LocationInfo},
		{"tell me about the municipality", LocationInfo},
		{"what is Agoo famous for", SignatureProductQuery},
		{"signature craft of Bauang", SignatureProductQuery},
		{"what is San Juan known for", SignatureProductQuery},
		{"recommend me something", RecommendationQuery},
		{"any suggestions?", RecommendationQuery},
		{"tell me about La Union culture", General},
		{"", General},
	}

	for _, tt := range tests {
		if got := Classify(tt.input); got != tt.expected {
			t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// Keyword rules are ordered; an utterance hitting several groups resolves to
// the earliest one.
func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Intent
	}{
		{"hello, what products are in the store?", Greeting},
		{"which store sells this product", StoreInfo},
		{"what products can I buy in this town", ProductInquiry},
		{"which town is famous for tourists", LocationInfo},
	}

	for _, tt := range tests {
		if got := Classify(tt.input); got != tt.expected {
			t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestClassifyWordBoundaries(t *testing.T) {
	// "history" contains "hi" but is not a greeting token.
	if got := Classify("the history of weaving"); got == Greeting {
		t.Errorf("substring %q must not match the greeting keyword", "history")
	}
	// Punctuation around tokens is stripped.
	if got := Classify("hi!"); got != Greeting {
		t.Errorf("Classify(%q) = %q, want %q", "hi!", got, Greeting)
	}
}

func TestClassifyScored(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		score    *Score
		expected Intent
	}{
		{"no score keeps keyword result", "what products do you have", nil, ProductInquiry},
		{"high confidence keeps keyword result", "what products do you have", &Score{Intent: "product_inquiry", Confidence: 0.9}, ProductInquiry},
		{"at threshold keeps keyword result", "what products do you have", &Score{Confidence: 0.3}, ProductInquiry},
		{"below threshold forces fallback", "what products do you have", &Score{Confidence: 0.29}, Fallback},
		{"zero confidence forces fallback", "hello", &Score{Confidence: 0}, Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyScored(tt.input, tt.score); got != tt.expected {
				t.Errorf("ClassifyScored(%q, %+v) = %q, want %q", tt.input, tt.score, got, tt.expected)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	input := "where can I buy inabel in San Juan"
	first := Classify(input)
	for i := 0; i < 10; i++ {
		if got := Classify(input); got != first {
			t.Fatalf("Classify(%q) changed between calls: %q then %q", input, first, got)
		}
	}
}
