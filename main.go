package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"slidecast/api"
	"slidecast/config"
	"slidecast/encoder"
	"slidecast/jobs"
	"slidecast/kafka"
	"slidecast/pipeline"
	"slidecast/publish"
	"slidecast/slides"
	"slidecast/storage"
	"slidecast/tts"
	"slidecast/types"
)

// DefaultAPIPort is the default port for the HTTP API server.
const DefaultAPIPort = ":8080"

func main() {
	batchMode := flag.Bool("batch", false, "Process request files from the input directory and exit")
	kafkaMode := flag.Bool("kafka", false, "Consume generation requests from Kafka")
	apiPort := flag.String("port", DefaultAPIPort, "API server port (e.g., :8080)")
	inputDir := flag.String("input", config.InputDir, "Batch mode input directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("🎬 Slidecast - Starting...")

	gen := &pipeline.Generator{
		Synth: &tts.Client{
			Endpoint: config.GetTTSEndpoint(),
			APIKey:   config.GetTTSAPIKey(),
			Timeout:  config.SynthTimeout,
		},
		Encoder:      &encoder.Encoder{},
		Rasterizer:   &slides.Rasterizer{DPI: config.RasterDPI},
		OutputDir:     config.OutputDir,
		BaseURL:       config.GetBaseURL(),
		SynthWorkers:  config.SynthWorkers,
		EnhanceFrames: config.GetEnhanceFrames(),
		UpscaleLimit:  config.UpscaleWarnFactor,
	}

	if *batchMode {
		log.Println("📁 Running in BATCH mode")
		if err := gen.ProcessFromDirectory(context.Background(), *inputDir, pipeline.DefaultBatchWorkers); err != nil {
			log.Fatalf("❌ Batch processing failed: %v", err)
		}
		os.Exit(0)
	}

	if *kafkaMode {
		log.Println("📨 Running in KAFKA consumer mode")
		if err := runKafkaConsumer(gen); err != nil {
			log.Fatalf("❌ Kafka consumer failed: %v", err)
		}
		os.Exit(0)
	}

	log.Println("🌐 Running in API mode")
	server := &api.Server{
		Generator: gen,
		UploadDir: config.UploadDir,
	}

	store := jobs.NewStore(config.GetRedisAddr(), config.JobStatusTTL)
	if err := store.Ping(context.Background()); err != nil {
		log.Printf("Redis unavailable (%v), job status tracking disabled", err)
	} else {
		server.Jobs = store
		defer store.Close()
	}

	if bucket := config.GetS3Bucket(); bucket != "" {
		uploader, err := storage.NewUploader(context.Background(), bucket, config.GetS3Region(), "videos")
		if err != nil {
			log.Printf("S3 unavailable (%v), uploads disabled", err)
		} else {
			server.Uploader = uploader
		}
	}

	if credsFile := config.GetYouTubeServiceAccount(); credsFile != "" {
		publisher, err := publish.NewPublisher(context.Background(), credsFile)
		if err != nil {
			log.Printf("YouTube unavailable (%v), publishing disabled", err)
		} else {
			server.Publisher = publisher
		}
	}

	router := api.NewRouter(server)
	log.Printf("🚀 API Server listening on %s", *apiPort)
	log.Println("📌 Endpoints:")
	log.Println("   POST /api/generate-video - Generate a video from script and slides")
	log.Println("   POST /api/upload-pdf     - Stage a slide deck")
	log.Println("   POST /api/upload-slide   - Stage a single slide image")
	log.Println("   POST /api/parse-script   - Validate a script without generating")
	log.Println("   GET  /api/jobs/:id       - Poll job status")
	log.Println("   GET  /health             - Health check")

	if err := router.Run(*apiPort); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// runKafkaConsumer consumes generation requests until interrupted.
func runKafkaConsumer(gen *pipeline.Generator) error {
	handler := &kafka.TypedMessageHandler[types.GenerateRequest]{
		Validate: func(req *types.GenerateRequest) bool {
			if req.ScriptText == "" {
				log.Println("Skipping message without script text")
				return false
			}
			if req.PDFPath == "" && req.SlideDir == "" {
				log.Println("Skipping message without a slide source")
				return false
			}
			return true
		},
		Process: func(ctx context.Context, req *types.GenerateRequest) error {
			_, err := gen.Generate(ctx, *req)
			return err
		},
		AlwaysMark: true,
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: kafka.GetBrokers(),
		Topic:   kafka.GetTopic(),
		GroupID: kafka.GetGroupID(),
		Handler: handler,
	})
	if err != nil {
		return err
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Println("Shutting down consumer...")
	return nil
}
