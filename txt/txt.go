// Package txt holds the user-facing strings. The product ships in a single
// locale (Uzbek, Cyrillic script) and there is no runtime switching.
package txt

const (
	Title = "voxnote"

	StartLabel       = "Ёзишни бошлаш"
	StopLabel        = "Ёзишни тўхтатиш"
	UnsupportedLabel = "Қурилма қўллаб-қувватламайди"

	MicrophoneDenied    = "Микрофонга кириш имкони йўқ. Илтимос, рухсат беринг."
	TranscriptionFailed = "Транскрипция қилишда хато"
	TranscriptionReady  = "Транскрипция тайёр"
	ErrorOccurred       = "Хато юз берди: "
	AudioMissing        = "Аудио файл топилмади"

	ConfigMissing = "config.yaml топилмади, стандарт созламалар ишлатилмоқда"
	ConfigLoaded  = "Созламалар: "

	Transcribing = "Транскрипция қилинмоқда..."
	ResultTitle  = "Транскрипция"
	Help         = "space/enter: ёзиш • q: чиқиш"
)

// MicrophoneError is the message shown when the microphone could not be
// opened. The underlying reason is appended on its own line.
func MicrophoneError(err error) string {
	if err == nil {
		return MicrophoneDenied
	}
	return MicrophoneDenied + "\n\nError: " + err.Error()
}

// Failure is the generic message for an upload that produced no usable
// response.
func Failure(err error) string {
	if err == nil {
		return ErrorOccurred + TranscriptionFailed
	}
	return ErrorOccurred + err.Error()
}
