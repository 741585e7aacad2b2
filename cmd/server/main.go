package main

import (
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"iptrust/blacklist"
	"iptrust/config"
	"iptrust/georesolve"
	"iptrust/logging"
	"iptrust/reputation"
	"iptrust/rules"
	"iptrust/trust"
)

// Dependency injection composition root
func main() {
	logLevel := flag.String("loglevel", "info", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	configPath := flag.String("config", "", "path to the YAML configuration file")
	ruleConf := flag.String("ruleconf", "", "if set, use the given rule document instead of the one named in the configuration")
	flag.Parse()

	loglevel, _ := zerolog.ParseLevel(*logLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(loglevel).With().Timestamp().Caller().Logger()

	fs := &trust.FileSystemImpl{}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(fs, *configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while loading configuration")
		}
	}
	if *ruleConf != "" {
		cfg.Rules.File = *ruleConf
	}

	bl := blacklist.NewStore(logger, fs, cfg.Blacklist.File)

	collection := rules.DefaultCollection()
	if cfg.Rules.File != "" {
		var err error
		collection, err = rules.NewLoader(logger, fs).LoadFile(cfg.Rules.File)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while loading rule document")
		}
	}

	resolver := newResolver(logger, cfg.Resolver)

	engineConfig := reputation.Config{
		CaseInsensitiveValues: cfg.Engine.CaseInsensitiveValues,
		NeutralScore:          cfg.Engine.NeutralScore,
	}
	if cfg.Engine.Clamp != nil {
		engineConfig.Clamp = &reputation.ClampRange{Min: cfg.Engine.Clamp.Min, Max: cfg.Engine.Clamp.Max}
	}

	engine := reputation.NewEngine(logger, resolver, bl, collection, engineConfig, logging.NewZerologResultsLogger(logger))

	h := &apiHandler{logger: logger, engine: engine}
	mux := http.NewServeMux()
	mux.HandleFunc("/reputation", h.reputation)
	mux.HandleFunc("/blacklist", h.blacklist)

	logger.Info().Str("addr", cfg.Server.Addr).Int("ruleCount", collection.Len()).Msg("Starting IP trust server")
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("Error while running IP trust server")
	}
}

func newResolver(logger zerolog.Logger, c config.Resolver) trust.GeoResolver {
	switch c.Kind {
	case config.ResolverMaxMind:
		r, err := georesolve.NewMaxMindResolver(logger, c.CityDB, c.ASNDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while opening MaxMind databases")
		}
		return r
	default:
		return georesolve.NewIPWhoisClient(logger, c.BaseURL, c.Timeout())
	}
}

type apiHandler struct {
	logger zerolog.Logger
	engine *reputation.Engine
}

func (h *apiHandler) reputation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ip := r.URL.Query().Get("ip")
	if ip == "" {
		writeJSONError(w, http.StatusBadRequest, "missing required query parameter \"ip\"")
		return
	}

	logger := h.logger.With().Str("txid", uuid.New().String()).Str("ip", ip).Logger()

	score, err := h.engine.GetReputation(r.Context(), ip)
	if err != nil {
		var unavailable *trust.ReputationUnavailableError
		if errors.As(err, &unavailable) {
			logger.Warn().Err(err).Msg("Scoring request failed upstream")
			writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		logger.Error().Err(err).Msg("Scoring request failed")
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info().Int("score", score).Msg("Scoring request completed")
	writeJSON(w, http.StatusOK, map[string]interface{}{"ip": ip, "score": score})
}

func (h *apiHandler) blacklist(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")

	var err error
	switch r.Method {
	case http.MethodPut:
		err = h.engine.AddToBlacklist(ip)
	case http.MethodDelete:
		err = h.engine.RemoveFromBlacklist(ip)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
