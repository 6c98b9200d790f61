package i18n

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"locales/en-us.json": &fstest.MapFile{Data: []byte(`{
  "checkingUpdate": "Checking for updates",
  "later": "Later"
}`)},
		"locales/ko-kr.json": &fstest.MapFile{Data: []byte(`{
  "checkingUpdate": "업데이트 확인 중",
  "later": "나중에"
}`)},
	}
}

func TestTextWithoutInit(t *testing.T) {
	reset()
	t.Cleanup(reset)

	if got := Text("later", "Later"); got != "Later" {
		t.Errorf("Text() = %q, want fallback %q", got, "Later")
	}
	if got := T("later", nil); got != "later" {
		t.Errorf("T() = %q, want message ID", got)
	}
}

func TestText(t *testing.T) {
	t.Cleanup(reset)

	tests := []struct {
		name     string
		lang     string
		key      string
		fallback string
		want     string
	}{
		{name: "english key", lang: "en-US", key: "checkingUpdate", fallback: "x", want: "Checking for updates"},
		{name: "korean key", lang: "ko-KR", key: "later", fallback: "Later", want: "나중에"},
		{name: "missing key uses fallback", lang: "ko-KR", key: "tryAgain", fallback: "Try Again", want: "Try Again"},
		{name: "unknown language uses english", lang: "fr-FR", key: "later", fallback: "x", want: "Later"},
		{name: "british english uses english table", lang: "en-GB", key: "later", fallback: "x", want: "Later"},
		{name: "bare english uses english table", lang: "en", key: "checkingUpdate", fallback: "x", want: "Checking for updates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(testFS(), tt.lang); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			if got := Text(tt.key, tt.fallback); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTFallsBackToEnglishTable(t *testing.T) {
	t.Cleanup(reset)

	for _, lang := range []string{"en", "en-GB", "fr-FR"} {
		if err := Init(testFS(), lang); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if got := T("later", nil); got != "Later" {
			t.Errorf("T(%q) with %s = %q, want %q", "later", lang, got, "Later")
		}
	}
}

func TestSetLocale(t *testing.T) {
	t.Cleanup(reset)

	if err := Init(testFS(), "en-US"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	SetLocale("ko-KR")

	if got := T("checkingUpdate", nil); got != "업데이트 확인 중" {
		t.Errorf("T() after SetLocale = %q", got)
	}
}
