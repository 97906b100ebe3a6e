package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"linkup-backend/config"
	"linkup-backend/controllers"
	"linkup-backend/controllers/authentication"
	"linkup-backend/models"
	"linkup-backend/repository"
	"linkup-backend/services"
)

func main() {
	cfg := config.Load()

	// Инициализируем базу данных
	if err := config.InitDB(); err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err := config.DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.Community{},
		&models.Vacancy{},
		&models.Comment{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	userRepo := repository.NewUserRepository(config.DB)
	sessionRepo := repository.NewSessionRepository(config.DB)
	postRepo := repository.NewPostRepository(config.DB)
	communityRepo := repository.NewCommunityRepository(config.DB)
	vacancyRepo := repository.NewVacancyRepository(config.DB)
	commentRepo := repository.NewCommentRepository(config.DB)
	messageRepo := repository.NewMessageRepository(config.DB)

	var mailer services.Mailer = services.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = services.NewSMTPMailer(cfg)
	}

	userService := services.NewUserService(userRepo, vacancyRepo, communityRepo, mailer, cfg)
	postService := services.NewPostService(postRepo, userRepo, communityRepo, cfg)
	communityService := services.NewCommunityService(communityRepo, userRepo, cfg)
	vacancyService := services.NewVacancyService(vacancyRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)

	authHandler := authentication.NewAuthHandler(userRepo, sessionRepo, userService, cfg)
	googleAuth := authentication.NewGoogleAuthHandler(userRepo, cfg)
	userHandler := controllers.NewUserHandler(userService)
	postHandler := controllers.NewPostHandler(postService)
	communityHandler := controllers.NewCommunityHandler(communityService, userService)
	vacancyHandler := controllers.NewVacancyHandler(vacancyService)
	commentHandler := controllers.NewCommentHandler(commentService)
	messageHandler := controllers.NewMessageHandler(messageService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Публичные маршруты
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/refresh", authHandler.Refresh)
	r.Post("/logout", authHandler.Logout)
	r.Get("/login/google", googleAuth.Login)
	r.Get("/callback/google", googleAuth.Callback)
	r.Get("/api/profile/verify-email", userHandler.ConfirmEmail)

	// Статика с загруженными изображениями
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
	r.Get("/static/*", fileServer.ServeHTTP)

	// Защищённые маршруты
	r.Route("/api", func(r chi.Router) {
		r.Use(authHandler.Middleware)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetUsers)
			r.Get("/{username}", userHandler.GetUser)
			r.Put("/{username}", userHandler.UpdateUser)
			r.Delete("/{username}", userHandler.DeleteUser)
			r.Get("/{username}/friends", userHandler.GetFriends)
			r.Post("/{username}/friends", userHandler.AddFriend)
			r.Put("/{username}/friends", userHandler.AcceptFriend)
			r.Delete("/{username}/friends", userHandler.DeleteFriend)
			r.Get("/{username}/messages", messageHandler.GetDialog)
			r.Post("/{username}/messages", messageHandler.SendMessage)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Put("/password", userHandler.UpdatePassword)
			r.Post("/avatar", userHandler.UploadAvatar)
			r.Post("/verify-email", userHandler.RequestEmailVerification)
			r.Put("/two-factor", userHandler.SetTwoFactor)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.GetPosts)
			r.Post("/", postHandler.AddPost)
			r.Get("/{id}", postHandler.GetPost)
			r.Put("/{id}", postHandler.UpdatePost)
			r.Delete("/{id}", postHandler.DeletePost)
			r.Post("/{id}/likes", postHandler.LikePost)
			r.Delete("/{id}/likes", postHandler.UnlikePost)
			r.Post("/{id}/image", postHandler.UploadImage)
			r.Get("/{id}/comments", commentHandler.GetComments)
			r.Post("/{id}/comments", commentHandler.AddComment)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Put("/{id}", commentHandler.UpdateComment)
			r.Delete("/{id}", commentHandler.DeleteComment)
		})

		r.Route("/communities", func(r chi.Router) {
			r.Get("/", communityHandler.GetCommunities)
			r.Post("/", communityHandler.AddCommunity)
			r.Get("/{id}", communityHandler.GetCommunity)
			r.Put("/{id}", communityHandler.UpdateCommunity)
			r.Delete("/{id}", communityHandler.DeleteCommunity)
			r.Post("/{id}/members", communityHandler.JoinCommunity)
			r.Delete("/{id}/members", communityHandler.LeaveCommunity)
			r.Get("/{id}/members", communityHandler.GetMembers)
			r.Post("/{id}/image", communityHandler.UploadImage)
		})

		r.Route("/vacancies", func(r chi.Router) {
			r.Get("/", vacancyHandler.GetVacancies)
			r.Post("/", vacancyHandler.AddVacancy)
			r.Get("/{id}", vacancyHandler.GetVacancy)
			r.Put("/{id}", vacancyHandler.UpdateVacancy)
			r.Delete("/{id}", vacancyHandler.DeleteVacancy)
		})
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	log.Printf("Сервер запущен на порту %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
