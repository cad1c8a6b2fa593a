package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/pricing"
	"storefront/internal/session"
	"storefront/internal/validation"
)

func main() {
	config.Load()
	logger := log.WithField("component", "MAIN")

	state, err := openStateStore()
	if err != nil {
		logger.Fatal(err)
	}

	sessions := session.NewStore(state)
	cartStore := cart.NewStore()
	client := api.New(
		config.AppEnv.APIBaseURL,
		sessions,
		api.WithHTTPClient(&http.Client{Timeout: config.AppEnv.APITimeout}),
		api.OnSessionExpired(cartStore.Reset),
	)
	carts := cart.NewService(client, cartStore, nil)

	policy := pricing.Policy{
		TaxRate:              config.AppEnv.TaxRate,
		DeliveryBusinessDays: config.AppEnv.DeliveryBusinessDays,
	}
	payments := validation.NewPaymentValidator()
	addresses := validation.NewAddressValidator()
	checkouts := handlers.NewCheckouts(func() *checkout.Session {
		return checkout.New(checkout.Dependencies{
			Cart:      carts,
			Remote:    client,
			Backup:    sessions,
			Policy:    policy,
			Payments:  payments,
			Addresses: addresses,
		})
	})

	if sessions.Authenticated(context.Background()) {
		if _, err := carts.LoadCart(context.Background()); err != nil {
			logger.WithError(err).Warn("initial cart load failed")
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", handlers.Health())

	r.POST("/auth/register", handlers.Register(client, sessions))
	r.POST("/auth/login", handlers.Login(client, sessions, carts))
	r.POST("/auth/logout", handlers.Logout(client, sessions, cartStore))
	r.GET("/auth/me", handlers.GetMe(sessions))

	r.GET("/products", handlers.GetProducts(client))
	r.GET("/products/:id", handlers.GetProduct(client))
	r.GET("/categories", handlers.GetCategories(client))

	r.GET("/cart/events", handlers.CartEvents(cartStore))
	r.GET("/orders/last", handlers.GetLastOrder(sessions))

	user := r.Group("/")
	user.Use(middleware.RequireSession(sessions))
	{
		user.GET("/cart", handlers.GetCart(carts, policy))
		user.POST("/cart/items", handlers.AddCartItem(carts, policy))
		user.PUT("/cart/items/:productId", handlers.UpdateCartItem(carts, policy))
		user.DELETE("/cart/items/:productId", handlers.RemoveCartItem(carts, policy))
		user.DELETE("/cart", handlers.ClearCart(carts, policy))

		user.POST("/checkout", handlers.StartCheckout(checkouts))
		user.GET("/checkout", handlers.GetCheckout(checkouts))
		user.POST("/checkout/addresses", handlers.AddCheckoutAddress(checkouts))
		user.PUT("/checkout/address", handlers.SelectCheckoutAddress(checkouts))
		user.POST("/checkout/payment", handlers.ProceedToPayment(checkouts))
		user.DELETE("/checkout/payment", handlers.BackToAddress(checkouts))
		user.PUT("/checkout/payment-method", handlers.SelectPaymentMethod(checkouts))
		user.PUT("/checkout/payment-details", handlers.SetPaymentDetails(checkouts))
		user.POST("/checkout/submit", handlers.SubmitCheckout(checkouts))

		user.GET("/orders", handlers.GetOrders(client, policy))

		user.GET("/addresses", handlers.GetUserAddresses(client))
		user.POST("/addresses", handlers.CreateUserAddress(client, addresses))
		user.POST("/addresses/:id/default", handlers.SetDefaultUserAddress(client))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(client))
	}

	logger.WithField("port", config.AppEnv.Port).Info("listening")
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		logger.Fatal(err)
	}
}

// openStateStore picks where credentials and the last order are kept.
func openStateStore() (database.StateStore, error) {
	logger := log.WithField("component", "DB")

	switch config.AppEnv.StateBackend {
	case config.BackendMongo:
		client, err := database.Connect(config.AppEnv.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(config.AppEnv.DBName)
		logger.WithField("db", db.Name()).Info("MongoDB connected")
		if err := database.EnsureStateIndexes(db); err != nil {
			logger.WithError(err).Warn("state index warning")
		}
		return database.NewMongoStore(db, config.AppEnv.StateKeyPrefix), nil

	case config.BackendMemory:
		logger.Warn("using in-memory state, sign-in will not survive a restart")
		return database.NewMemoryStore(), nil

	default:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := database.ConnectRedis(ctx, config.AppEnv.RedisAddr, config.AppEnv.RedisPassword, config.AppEnv.RedisDB)
		if err != nil {
			return nil, err
		}
		logger.WithField("addr", config.AppEnv.RedisAddr).Info("Redis connected")
		return database.NewRedisStore(client, config.AppEnv.StateKeyPrefix), nil
	}
}
