package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI  string
	MongoDB   string
	JWTSecret string
	Port      string

	// Image storage collaborator.
	ImageKitPrivateKey string
	ImageKitUploadURL  string
	ImageKitFolder     string
}

func mustConfig() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		MongoURI:           getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getenv("MONGO_DB", "skywatch"),
		JWTSecret:          getenv("JWT_SECRET", "change_me"),
		Port:               getenv("PORT", "8080"),
		ImageKitPrivateKey: getenv("IMAGEKIT_PRIVATE_KEY", ""),
		ImageKitUploadURL:  getenv("IMAGEKIT_UPLOAD_URL", ""),
		ImageKitFolder:     getenv("IMAGEKIT_FOLDER", "skywatch"),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
