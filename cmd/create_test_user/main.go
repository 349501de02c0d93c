package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"tavern_bot/internal/db"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository"
	"tavern_bot/internal/service"

	"github.com/joho/godotenv"
)

// create_test_user makes sure a ledger row exists, tops it up and prints a
// dashboard session token for it.
func main() {
	userID := flag.String("id", "100000000000000001", "discord user id")
	username := flag.String("name", "testuser", "username embedded in the session")
	balance := flag.Int64("balance", 0, "coins to credit")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	store := repository.NewPostgresStore(pool, 1000)
	defer store.Close()

	err = store.WithinUserTx(ctx, *userID, func(ctx context.Context, r repository.Repos) error {
		u, err := r.Users.GetOrCreate(ctx, *userID)
		if err != nil {
			return err
		}
		log.Printf("user %s balance=%d chat=%d voice=%ds", u.ID, u.Balance, u.ChatCount, u.VoiceSeconds)
		if *balance == 0 {
			return nil
		}
		nb, err := r.Users.AdjustBalance(ctx, *userID, *balance)
		if err != nil {
			return err
		}
		log.Printf("credited %d, balance now %d", *balance, nb)
		return r.Transactions.Create(ctx, &domain.Transaction{
			UserID: *userID,
			Type:   domain.TxGrant,
			Amount: *balance,
			Meta:   map[string]interface{}{"source": "create_test_user"},
		})
	})
	if err != nil {
		log.Fatalf("prepare user: %v", err)
	}

	tokens := service.NewTokenService(secret, 24*time.Hour)
	token, err := tokens.Issue(*userID, *username, "")
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s", token)
}
