package gotlmem

import "strings"

// LanguageNames maps supported language codes to the English names used in
// provider prompts.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"pt": "Portuguese",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"nl": "Dutch",
	"pl": "Polish",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
}

// NativeNames maps supported language codes to their native display names,
// used for switcher labels.
var NativeNames = map[string]string{
	"en": "English",
	"es": "Español",
	"pt": "Português",
	"fr": "Français",
	"de": "Deutsch",
	"it": "Italiano",
	"nl": "Nederlands",
	"pl": "Polski",
	"ru": "Русский",
	"zh": "中文",
	"ja": "日本語",
	"ko": "한국어",
	"ar": "العربية",
}

// GetLanguageName returns the English name for a language code, falling
// back to the code itself so prompts stay usable for unknown codes.
func GetLanguageName(code string) string {
	if name, ok := LanguageNames[normalizeLang(code)]; ok {
		return name
	}
	return code
}

// GetNativeName returns the native display name for a language code.
func GetNativeName(code string) string {
	if name, ok := NativeNames[normalizeLang(code)]; ok {
		return name
	}
	return code
}

// IsSupportedLanguage reports whether code is in the supported set.
func IsSupportedLanguage(code string) bool {
	_, ok := LanguageNames[normalizeLang(code)]
	return ok
}

// FormatLangLabel renders a switcher label for a language according to the
// configured label format: "code" (ES), "both" (ES - Español), or the
// native name.
func FormatLangLabel(code, name, format string) string {
	switch format {
	case "code":
		return strings.ToUpper(code)
	case "both":
		return strings.ToUpper(code) + " - " + name
	default:
		return name
	}
}

// normalizeLang lowercases a code and strips any regional suffix
// ("pt_BR" and "pt-br" both become "pt").
func normalizeLang(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "_-"); i > 0 {
		code = code[:i]
	}
	return code
}
