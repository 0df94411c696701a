package database

import (
	"context"
	"fmt"
	"time"

	"hairbook/config"
	"hairbook/utils"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// InitDB initializes the MongoDB connection.
func InitDB() (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	utils.GetLogger().Info("Connected to MongoDB successfully", zap.String("database", config.AppConfig.DatabaseName))
	return client, nil
}

// InitFirestore initializes the Firebase app and its Firestore client.
func InitFirestore() (*firestore.Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	var fbConfig *firebase.Config
	if config.AppConfig.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}

	utils.GetLogger().Info("Connected to Firestore successfully")
	return client, nil
}
