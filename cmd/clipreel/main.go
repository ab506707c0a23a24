package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/clipreel/clipreel/internal/library"
	"github.com/clipreel/clipreel/internal/media"
	"github.com/clipreel/clipreel/internal/proxy"
	"github.com/clipreel/clipreel/internal/server"
	"github.com/clipreel/clipreel/internal/storage"
	"github.com/clipreel/clipreel/web"
)

func main() {
	port := getEnv("PORT", "3000")

	upstreams := splitList(getEnv("BACKEND_URLS", "http://127.0.0.1:8000,http://localhost:8000"))
	proxyHandler := proxy.New(proxy.Config{
		Upstreams: upstreams,
		Timeout:   time.Duration(getEnvInt64("PROXY_TIMEOUT_SECONDS", 20)) * time.Second,
		CacheTTL:  time.Duration(getEnvInt64("CACHE_TTL_SECONDS", 60)) * time.Second,
	})

	resolver := media.Resolver{PublicBase: os.Getenv("MEDIA_PUBLIC_BASE")}

	var store library.ObjectStore
	var signer library.URLSigner
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Store, err := storage.New(ctx, storage.Config{
			Endpoint:       endpoint,
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			Bucket:         getEnv("S3_BUCKET", "cres"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Region:         os.Getenv("S3_REGION"),
		})
		if err != nil {
			cancel()
			log.Fatalf("storage initialization failed: %v", err)
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Fatalf("storage bucket check failed: %v", err)
		}
		cancel()
		store = s3Store
		signer = s3Store
		log.Println("library bucket ready")
	}

	mediaDir := getEnv("MEDIA_DIR", "web/public")
	lib := library.New(library.Config{
		DataPaths: splitList(getEnv("DATA_PATHS", "src/data.json,web/src/data.json")),
		Store:     store,
		IndexKey:  getEnv("LIBRARY_INDEX_KEY", "data.json"),
		Signer:    signer,
		MediaDir:  mediaDir,
		Resolver:  resolver,
	})

	var webFS fs.FS
	if sub, err := fs.Sub(web.DistFS, "dist"); err == nil {
		webFS = sub
		log.Println("embedded frontend loaded")
	} else {
		log.Println("no embedded frontend found, shell serving disabled")
	}

	srv := server.New(server.Config{
		Proxy:    proxyHandler,
		Library:  library.NewHandler(lib, resolver),
		Pinger:   lib,
		WebFS:    webFS,
		MediaDir: mediaDir,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("clipreel listening on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
