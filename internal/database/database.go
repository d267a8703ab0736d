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
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// --- Variables Globales ---
var (
	MongoClient       *mongo.Client
	MongoProductsDB   *mongo.Database
	MongoCategoriesDB *mongo.Database
	MongoOrdersDB     *mongo.Database
	Redis             *redis.Client
	ElasticClient     *elasticsearch.Client
	MinioClient       *minio.Client
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. MongoDB (catalogue + commandes)
	connectMongo(ctx)

	// 2. Redis (cache catalogue)
	connectRedis(ctx)

	// 3. Elasticsearch (recherche produits, optionnel)
	connectElastic()

	// 4. MinIO (images produits, optionnel)
	connectMinIO(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// MONGODB (un client, une base par domaine)
// =============================================
func connectMongo(ctx context.Context) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("❌ Erreur connexion MongoDB:", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("❌ MongoDB injoignable:", err)
	}

	MongoClient = client
	MongoProductsDB = client.Database(envOrDefault("MONGO_DB_PRODUCTS", "verdura_products"))
	MongoCategoriesDB = client.Database(envOrDefault("MONGO_DB_CATEGORIES", "verdura_categories"))
	MongoOrdersDB = client.Database(envOrDefault("MONGO_DB_ORDERS", "verdura_orders"))

	log.Println("✅ Connecté à MongoDB :", uri)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// CloseMongo ferme la connexion MongoDB
func CloseMongo() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := MongoClient.Disconnect(ctx); err != nil {
		log.Println("⚠️ Erreur fermeture MongoDB:", err)
	}
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     envOrDefault("REDIS_HOST", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL absent — recherche via MongoDB uniquement")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Elasticsearch non configuré :", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable :", err)
		return
	}
	defer res.Body.Close()

	ElasticClient = client
	log.Println("✅ Connecté à Elasticsearch")
}

// =============================================
// MINIO
// =============================================
func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT absent — upload d'images désactivé")
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
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	bucketName := envOrDefault("MINIO_BUCKET", "verdura-images")
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Println("⚠️ Erreur vérification bucket MinIO:", err)
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Erreur création bucket MinIO:", err)
			return
		}
		log.Println("🪣 Bucket créé :", bucketName)
	} else {
		log.Println("🪣 Bucket MinIO déjà présent :", bucketName)
	}

	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}
