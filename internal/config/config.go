package config

import "os"

// Config holds the runtime settings read from the environment.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	UploadDir   string
}

func Load() Config {
	addr := os.Getenv("PAWMART_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	uploadDir := os.Getenv("PAWMART_UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		UploadDir:   uploadDir,
	}
}
