package main

import (
	"context"
	"flag"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bloggerum-backend/internal/config"
	"bloggerum-backend/internal/domains/post"
	"bloggerum-backend/internal/domains/tag"
	"bloggerum-backend/internal/domains/user"
	"bloggerum-backend/internal/infrastructure/database"
	"bloggerum-backend/internal/shared/utils"
	pkgdb "bloggerum-backend/pkg/database"
	"bloggerum-backend/pkg/logger"
)

var seedTags = []string{"go", "rust", "postgres", "redis", "design", "devops", "frontend", "career"}

func main() {
	count := flag.Int("posts", 50, "number of posts to generate")
	email := flag.String("email", "seed@bloggerum.dev", "author account (created if missing)")
	password := flag.String("password", "password123", "author password when the account is created")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(utils.GetEnvVariable("APP_ENV", "development"))

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed to load database config")
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed to connect")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.Pool); err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed to migrate")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed to hash password")
	}

	err = pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		authorID, err := ensureAuthor(ctx, tx, user.NormalizeEmail(*email), string(hash))
		if err != nil {
			return err
		}
		for i := 0; i < *count; i++ {
			if err := insertPost(ctx, tx, authorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed")
	}

	log.Info().Int("posts", *count).Str("author", *email).Msg("🌱 Database seeded!")
}

func ensureAuthor(ctx context.Context, tx pgx.Tx, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, bio)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (LOWER(email)) DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, gofakeit.Name(), email, passwordHash, user.DefaultBio).Scan(&id)
	return id, err
}

func insertPost(ctx context.Context, tx pgx.Tx, authorID uuid.UUID) error {
	p := &post.Post{
		UserID:    authorID,
		Title:     gofakeit.Sentence(gofakeit.Number(3, 8)),
		Body:      post.FromPlainText(gofakeit.Paragraph(gofakeit.Number(2, 5), 4, 12, "\n\n")),
		Thumbnail: gofakeit.ImageURL(1200, 800),
		Tags:      pickTags(),
	}
	p.Reindex()

	for _, name := range p.Tags {
		if _, err := tx.Exec(ctx, `INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	// updated_at lùi ngẫu nhiên để danh sách có thứ tự tự nhiên
	_, err := tx.Exec(ctx, `
		INSERT INTO posts (user_id, title, body, thumbnail, tags, search_words, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW() - make_interval(mins => $7))
	`, p.UserID, p.Title, p.Body, p.Thumbnail, p.Tags, p.SearchWords, gofakeit.Number(0, 60*24*30))
	return err
}

func pickTags() []string {
	n := gofakeit.Number(1, 3)
	picked := make([]string, 0, n)
	for i := 0; i < n; i++ {
		picked = append(picked, gofakeit.RandomString(seedTags))
	}
	return tag.Normalize(picked)
}
