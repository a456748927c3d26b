package www

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"node.town/voxnote/ai"
	"node.town/voxnote/config"
	"node.town/voxnote/transcribe"
	"node.town/voxnote/txt"
)

const maxUploadBytes = 32 << 20

type Server struct {
	transcriber ai.Transcriber
	logger      *log.Logger
}

func NewServer(transcriber ai.Transcriber, logger *log.Logger) *Server {
	return &Server{transcriber: transcriber, logger: logger}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post(transcribe.Endpoint, s.handleTranscribe)
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.logger.Warn("bad upload", "error", err)
		reply(w, http.StatusBadRequest, transcribe.Result{Message: txt.AudioMissing})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(transcribe.FieldName)
	if err != nil {
		reply(w, http.StatusBadRequest, transcribe.Result{Message: txt.AudioMissing})
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "audio/webm"
	}

	s.logger.Info("transcribing",
		"request", middleware.GetReqID(r.Context()),
		"file", header.Filename,
		"size", header.Size,
		"type", mediaType,
	)

	text, err := s.transcriber.Transcribe(r.Context(), file, header.Filename, mediaType)
	if err != nil {
		s.logger.Error("transcription failed", "error", err)
		reply(w, http.StatusBadGateway, transcribe.Result{Message: txt.TranscriptionFailed})
		return
	}

	reply(w, http.StatusOK, transcribe.Result{Success: true, Transcription: text})
}

func reply(w http.ResponseWriter, status int, result transcribe.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(result)
}

// Serve blocks until ctx is cancelled or the listener fails.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("http", "addr", addr, "endpoint", transcribe.Endpoint)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local transcription endpoint",
	Long:  `Serve POST /transcribe-audio/ for development, backed by the configured transcription backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.Default().WithPrefix("http")

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			logger.Fatal("load config", "error", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		backend, err := NewBackend(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("create backend", "backend", cfg.Backend, "error", err)
		}
		defer backend.Close()

		srv := NewServer(backend, logger)
		if err := Serve(ctx, cfg.ListenAddr, srv.Router(), logger); err != nil {
			logger.Fatal("serve", "error", err)
		}
	},
}

func init() {
	ServeCmd.Flags().StringP("addr", "a", ":8000", "Address to listen on")
	ServeCmd.Flags().StringP("backend", "b", "echo", "Transcription backend: echo, gemini or openai")
	viper.BindPFlag("listen_addr", ServeCmd.Flags().Lookup("addr"))
	viper.BindPFlag("backend", ServeCmd.Flags().Lookup("backend"))
}
