package views

import "testing"

func TestFormatInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**kayu jati**", "<strong>kayu jati</strong>"},
		{"finishing *natural*", "finishing <em>natural</em>"},
		{"**tebal *4cm* solid**", "<strong>tebal <em>4cm</em> solid</strong>"},
		{"<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
		{"[WA](https://wa.me/62812)", `<a href="https://wa.me/62812" target="_blank" rel="noopener noreferrer">WA</a>`},
		{"[x](javascript:void)", "x"},
		{"[*a*](https://x.id/a_b_c)", `<a href="https://x.id/a_b_c" target="_blank" rel="noopener noreferrer"><em>a</em></a>`},
	}
	for _, tt := range tests {
		if got := formatInline(tt.input); got != tt.expected {
			t.Errorf("formatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDescriptionBlocks(t *testing.T) {
	in := "Meja makan kayu jati.\nCocok untuk cafe.\n\n- Panjang 120cm\n- Lebar 80cm\nTanya stok via WhatsApp."
	want := `<div class="description"><p>Meja makan kayu jati. Cocok untuk cafe.</p>` +
		`<ul><li>Panjang 120cm</li><li>Lebar 80cm</li></ul>` +
		`<p>Tanya stok via WhatsApp.</p></div>`
	if got := renderString(t, Description(in)); got != want {
		t.Errorf("Description =\n%s\nwant\n%s", got, want)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/product/meja-jati/", "/product/meja-jati/"},
		{"//evil.example", ""},
		{"tel:+6281234", "tel:+6281234"},
		{"data:text/html,x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := safeURL(tt.input); got != tt.expected {
			t.Errorf("safeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestHashtagLinks(t *testing.T) {
	got := hashtagLinks("#mejacafe it's #palu")
	want := `<a href="https://www.instagram.com/explore/tags/mejacafe/" target="_blank" rel="noopener">#mejacafe</a>` +
		` it&#39;s ` +
		`<a href="https://www.instagram.com/explore/tags/palu/" target="_blank" rel="noopener">#palu</a>`
	if got != want {
		t.Errorf("hashtagLinks = %q, want %q", got, want)
	}
}
