package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/polyglotcap/captions/internal/caption"
	"github.com/polyglotcap/captions/internal/config"
	"github.com/polyglotcap/captions/internal/db"
	"github.com/polyglotcap/captions/internal/httpapi"
	"github.com/polyglotcap/captions/internal/speech"
	"github.com/polyglotcap/captions/internal/store/rabbitmq"
	"github.com/polyglotcap/captions/internal/store/redisstore"
	"github.com/polyglotcap/captions/internal/translate"
	"github.com/polyglotcap/captions/internal/users"
)

func main() {
	cfg := config.Load()

	// Store selection happens once at startup: a configured DSN picks
	// the database-backed stores, otherwise everything is in-memory.
	var (
		gdb    *gorm.DB
		ustore users.Store
		cstore caption.Store
	)
	if cfg.DBDSN != "" {
		gdb = db.Connect(cfg.DBDSN)
		if err := gdb.AutoMigrate(&users.User{}, &caption.Caption{}, &caption.TranslateJob{}); err != nil {
			log.Fatalf("automigrate: %v", err)
		}
		ustore = users.NewDBStore(gdb)
		cstore = caption.NewDBStore(gdb)
	} else {
		log.Printf("no DB_DSN configured, using in-memory stores")
		ustore = users.NewMemStore()
		cstore = caption.NewMemStore()
	}

	var transcriber speech.Transcriber = speech.Stub{}
	if cfg.AzureSpeechKey != "" {
		transcriber = speech.NewAzureTranscriber(cfg.AzureSpeechKey, cfg.AzureSpeechRegion, cfg.FFmpegPath)
	}

	var translator translate.Translator = translate.Stub{}
	if cfg.UseAzureTranslator && cfg.AzureTranslatorKey != "" && cfg.AzureTranslatorEndpoint != "" {
		translator = translate.NewAzureTranslator(cfg.AzureTranslatorKey, cfg.AzureTranslatorEndpoint, cfg.AzureTranslatorRegion)
	}

	svc := caption.NewService(cstore, transcriber, translator, cfg.LogCaptionsToDB)

	cache := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RecentCacheTTL)
	defer cache.Close()

	rabbit, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Printf("rabbit unavailable, async translation disabled: %v", err)
		rabbit = nil
	} else {
		defer rabbit.Close()
	}

	r := httpapi.NewRouter(cfg, ustore, svc, cache, rabbit, gdb)

	log.Printf("captions api listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
