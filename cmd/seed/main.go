package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"microblog/internal/config"
	"microblog/internal/db"
	"microblog/internal/model"
	"microblog/internal/repository"
)

type seedUser struct {
	Username string
	Password string
	Posts    []seedPost
}

type seedPost struct {
	Title   string
	Content string
}

var seedUsers = []seedUser{
	{
		Username: "alice",
		Password: "password123",
		Posts: []seedPost{
			{Title: "Hello, world", Content: "First post on the new blog."},
			{Title: "On writing", Content: "Short posts beat long drafts that never ship."},
		},
	},
	{
		Username: "bob",
		Password: "password123",
		Posts: []seedPost{
			{Title: "Reading list", Content: "What I plan to read this month."},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	created, skipped := 0, 0
	for _, s := range seedUsers {
		user, err := userRepo.FindByUsername(ctx, s.Username)
		if err == nil {
			log.Printf("User %s already exists, skipping", s.Username)
			skipped++
		} else if err == gorm.ErrRecordNotFound {
			hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash password for %s: %v", s.Username, err)
			}
			user = &model.User{Username: s.Username, PasswordHash: string(hash)}
			if err := userRepo.Create(ctx, user); err != nil {
				log.Fatalf("Failed to create user %s: %v", s.Username, err)
			}
			created++
		} else {
			log.Fatalf("Failed to look up user %s: %v", s.Username, err)
		}

		for _, p := range s.Posts {
			post := &model.Post{Title: p.Title, Content: p.Content, AuthorID: user.ID}
			if err := postRepo.Create(ctx, post); err != nil {
				log.Fatalf("Failed to create post %q: %v", p.Title, err)
			}
		}
	}

	log.Printf("Seed complete: %d users created, %d skipped", created, skipped)
}
