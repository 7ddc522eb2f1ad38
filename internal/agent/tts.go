package agent

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"patient-intake-agent/internal/intake"
	"patient-intake-agent/internal/platform/metrics"
)

// ttsTimeout bounds a synthesis call so a dead speech service cannot hang
// the intake request.
const ttsTimeout = 15 * time.Second

var voiceMap = map[string]string{
	intake.LangEnglish: "en-IN-NeerjaNeural",
	intake.LangHindi:   "hi-IN-SwaraNeural",
	intake.LangKannada: "kn-IN-SapnaNeural",
}

const defaultVoice = "en-IN-NeerjaNeural"

// SpeechClient calls the neural TTS sidecar. It implements
// intake.SpeechSynthesizer and never fails a request: any synthesis problem
// is logged and reported as absent audio.
type SpeechClient struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	tempDir    string
}

func NewSpeechClient(baseURL string, log zerolog.Logger) *SpeechClient {
	return &SpeechClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: ttsTimeout,
		},
		log:     log,
		tempDir: os.TempDir(),
	}
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Synthesize returns base64-encoded MP3 audio for the text in the given
// language, or an empty string when the speech service is unavailable.
func (c *SpeechClient) Synthesize(ctx context.Context, text, language string) string {
	if text == "" {
		return ""
	}

	voice, ok := voiceMap[language]
	if !ok {
		voice = defaultVoice
	}
	c.log.Info().Str("language", language).Str("voice", voice).Msg("generating tts")

	audio, err := c.fetch(ctx, text, voice)
	if err != nil {
		c.log.Warn().Err(err).Msg("tts unavailable, returning null audio")
		metrics.RecordTTSFailure()
		return ""
	}
	return audio
}

// fetch stages the audio through a temp file so a half-written download is
// never encoded. The file is removed on every exit path.
func (c *SpeechClient) fetch(ctx context.Context, text, voice string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ttsTimeout)
	defer cancel()

	body, err := json.Marshal(synthesizeRequest{Text: text, Voice: voice})
	if err != nil {
		return "", errors.Wrap(err, "marshal tts request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return "", errors.Wrap(err, "build tts request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call tts service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("tts service error: %s", resp.Status)
	}

	tempPath := filepath.Join(c.tempDir, "tts_"+uuid.New().String()+".mp3")
	defer os.Remove(tempPath)

	out, err := os.Create(tempPath)
	if err != nil {
		return "", errors.Wrap(err, "create temp audio file")
	}
	written, err := io.Copy(out, resp.Body)
	out.Close()
	if err != nil {
		return "", errors.Wrap(err, "write temp audio file")
	}
	if written == 0 {
		return "", errors.New("tts produced an empty file")
	}

	audio, err := os.ReadFile(tempPath)
	if err != nil {
		return "", errors.Wrap(err, "read temp audio file")
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}
