package main

import (
	"time"

	"hairbook/config"
	"hairbook/database/docstore"
	"hairbook/database/repository"
	"hairbook/handlers"
	"hairbook/middleware"
	"hairbook/routes"
	"hairbook/services/access"
	"hairbook/services/auth"
	"hairbook/services/booking"
	"hairbook/services/rating"
	"hairbook/services/review"
	"hairbook/services/shop"
	"hairbook/services/user"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// appDeps are the infrastructure pieces main picks at startup.
type appDeps struct {
	Store       docstore.Store
	AuthCache   *redis.Client
	RatingQueue rating.RecomputeQueue
	// Now overrides the wall clock of every service; nil means time.Now.
	Now func() time.Time
}

// app holds the wired services so main can reach the ones the worker needs.
type app struct {
	Repos     *repository.Repositories
	Authority *auth.Authority
	Rating    *rating.Aggregator
	Scheduler *booking.Scheduler
	Reviews   *review.Service
	Shops     *shop.Service
	Users     *user.DefaultUserService
}

func newApp(deps appDeps) (*app, error) {
	repos := repository.New(deps.Store)
	loc := config.Location()

	authority, err := auth.NewAuthority(config.AppConfig.JWTSecret, repos.Revocations, deps.AuthCache)
	if err != nil {
		return nil, err
	}

	guard := access.NewGuard(repos.Shops)
	agg := rating.NewAggregator(repos.Reviews, repos.Shops, deps.RatingQueue)
	scheduler := booking.NewScheduler(deps.Store, repos.Shops, repos.Services, repos.Bookings, repos.Reviews, guard, loc)
	reviewSvc := review.NewService(repos.Reviews, repos.Shops, repos.Bookings, guard, agg,
		config.AppConfig.ReviewRequiresPastBooking, loc)
	shopSvc := shop.NewService(repos.Shops, repos.Services, guard)
	userSvc := user.NewUserService(repos.Users, authority)

	if deps.Now != nil {
		authority.Now = deps.Now
		scheduler.Now = deps.Now
		reviewSvc.Now = deps.Now
		shopSvc.Now = deps.Now
	}

	return &app{
		Repos:     repos,
		Authority: authority,
		Rating:    agg,
		Scheduler: scheduler,
		Reviews:   reviewSvc,
		Shops:     shopSvc,
		Users:     userSvc,
	}, nil
}

// Router builds the gin engine with the global middleware chain and every route group.
func (a *app) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		middleware.Authenticate(a.Authority, a.Users),
		handlers.NewAuthHandler(a.Users),
		handlers.NewBookingHandler(a.Scheduler),
		handlers.NewReviewHandler(a.Reviews),
		handlers.NewOwnerHandler(a.Shops, a.Scheduler, a.Reviews),
		handlers.NewSharedHandler(a.Shops, a.Reviews),
	)

	routes.RegisterRoutes(router, handlerBundle)
	return router
}
