// Command seed populates a development database with demo accounts,
// psychologist profiles, articles and a handful of bookings.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"mindcare-backend/config"
	"mindcare-backend/internal/db"
	"mindcare-backend/internal/markdown"
	"mindcare-backend/internal/model"
	"mindcare-backend/internal/schedule"
	"mindcare-backend/internal/store"
)

const demoPassword = "password123"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.Fatalf("initialize database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()
	s := store.NewGormStore(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("hash demo password: %v", err)
	}

	admin := model.User{Name: "Admin", Email: "admin@mindcare.local", PasswordHash: string(hash), Role: model.RoleAdmin}
	if err := s.CreateUser(ctx, &admin); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	patients := seedPatients(ctx, s, string(hash), 40)
	psychologists := seedPsychologists(ctx, s, string(hash), 12)
	seedArticles(ctx, s, psychologists, 3)
	seedAppointments(ctx, s, patients, psychologists)

	log.Println("seed complete")
}

func seedPatients(ctx context.Context, s store.Store, hash string, count int) []model.User {
	log.Printf("seeding %d patients", count)

	patients := make([]model.User, 0, count)
	for i := 0; i < count; i++ {
		u := model.User{
			Name:         gofakeit.Name(),
			Email:        gofakeit.Email(),
			PasswordHash: hash,
			Role:         model.RolePatient,
		}
		if err := s.CreateUser(ctx, &u); err != nil {
			log.Printf("skip patient %q: %v", u.Email, err)
			continue
		}
		patients = append(patients, u)
	}
	return patients
}

func seedPsychologists(ctx context.Context, s store.Store, hash string, count int) []model.Psychologist {
	log.Printf("seeding %d psychologists", count)

	specializations := []string{
		"Cognitive behavioral therapy",
		"Family therapy",
		"Child psychology",
		"Trauma and PTSD",
		"Anxiety and depression",
		"Addiction",
	}

	profiles := make([]model.Psychologist, 0, count)
	for i := 0; i < count; i++ {
		u := model.User{
			Name:         "Dr. " + gofakeit.Name(),
			Email:        gofakeit.Email(),
			PasswordHash: hash,
			Role:         model.RolePsychologist,
		}
		if err := s.CreateUser(ctx, &u); err != nil {
			log.Printf("skip psychologist %q: %v", u.Email, err)
			continue
		}

		status := model.PsychologistApproved
		// Keep a couple in the moderation queue for the admin demo.
		if i%6 == 5 {
			status = model.PsychologistPending
		}

		p := model.Psychologist{
			UserID:          u.ID,
			Specialization:  specializations[i%len(specializations)],
			Bio:             gofakeit.Paragraph(1, 3, 12, " "),
			ExperienceYears: gofakeit.Number(1, 25),
			PricePerHour:    gofakeit.Number(30, 150),
			Status:          status,
		}
		if err := s.CreatePsychologist(ctx, &p); err != nil {
			log.Printf("skip profile for %q: %v", u.Email, err)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles
}

func seedArticles(ctx context.Context, s store.Store, psychologists []model.Psychologist, perAuthor int) {
	log.Printf("seeding %d articles per approved psychologist", perAuthor)

	renderer := markdown.NewRenderer()
	for _, p := range psychologists {
		if p.Status != model.PsychologistApproved {
			continue
		}
		for i := 0; i < perAuthor; i++ {
			md := "## " + gofakeit.Sentence(4) + "\n\n" + gofakeit.Paragraph(2, 4, 14, "\n\n")
			html, err := renderer.Render(md)
			if err != nil {
				log.Printf("render article: %v", err)
				continue
			}

			status := model.ArticleApproved
			if i == 0 {
				status = model.ArticlePending
			}
			a := model.Article{
				PsychologistID: p.ID,
				Title:          gofakeit.Sentence(5),
				Markdown:       md,
				HTML:           html,
				Status:         status,
			}
			if err := s.CreateArticle(ctx, &a); err != nil {
				log.Printf("seed article: %v", err)
			}
		}
	}
}

func seedAppointments(ctx context.Context, s store.Store, patients []model.User, psychologists []model.Psychologist) {
	if len(patients) == 0 || len(psychologists) == 0 {
		return
	}
	log.Println("seeding appointments")

	slots := schedule.Generate(time.Now().UTC(), schedule.DefaultRules())
	if len(slots) == 0 {
		return
	}

	for i, p := range psychologists {
		if p.Status != model.PsychologistApproved {
			continue
		}
		for j := 0; j < 3 && j < len(slots); j++ {
			patient := patients[(i*3+j)%len(patients)]
			a := model.Appointment{
				PsychologistID:      p.ID,
				PatientID:           patient.ID,
				AppointmentDateTime: slots[(i+j*5)%len(slots)],
				Status:              model.AppointmentScheduled,
			}
			if err := s.CreateAppointment(ctx, &a); err != nil {
				log.Printf("seed appointment: %v", err)
			}
		}
	}
}
