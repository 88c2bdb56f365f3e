package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Global clients ---
var (
	MongoClient *mongo.Client
	Mongo       *mongo.Database
	Redis       *redis.Client
	RedisClient *redis.Client // alias kept for older call sites
	Elastic     *elasticsearch.Client
	MinIO       *minio.Client
)

// ConnectDatabases initialises MongoDB, Redis, Elasticsearch and MinIO.
// Mongo and Redis are required; Elastic and MinIO degrade to nil clients.
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx)
	connectRedis(ctx)
	connectElastic()
	connectMinIO(ctx)

	log.Println("✅ All datastores connected")
}

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ MongoDB connection error:", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("❌ MongoDB ping error:", err)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "swadbazaar"
	}

	MongoClient = client
	Mongo = client.Database(dbName)
	log.Println("✅ Connected to MongoDB, database:", dbName)
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	RedisClient = Redis

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Redis connection error:", err)
	}
	log.Println("✅ Connected to Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL not set — catalog search disabled")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Elasticsearch client error:", err)
		return
	}

	Elastic = client
	log.Println("✅ Connected to Elasticsearch")
}

// =============================================
// MINIO
// =============================================
func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT not set — image uploads disabled")
		return
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatal("❌ MinIO connection error:", err)
	}

	bucketName := os.Getenv("MINIO_BUCKET")
	if bucketName == "" {
		bucketName = "swadbazaar-products"
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Fatal("❌ MinIO bucket check error:", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Fatal("❌ MinIO bucket creation error:", err)
		}
		log.Println("🪣 Bucket created:", bucketName)
	} else {
		log.Println("🪣 MinIO bucket present:", bucketName)
	}

	MinIO = client
	log.Println("✅ Connected to MinIO:", endpoint)
}
