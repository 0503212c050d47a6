package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/checkoutwizard/lib/myhttpclient"
	"github.com/MarcGrol/checkoutwizard/lib/mypublisher"
	"github.com/MarcGrol/checkoutwizard/lib/mypubsub"
	"github.com/MarcGrol/checkoutwizard/lib/myqueue"
	"github.com/MarcGrol/checkoutwizard/lib/mystore"
	"github.com/MarcGrol/checkoutwizard/lib/mytime"
	"github.com/MarcGrol/checkoutwizard/lib/myuuid"
	"github.com/MarcGrol/checkoutwizard/services/checkoutwizard"
	"github.com/MarcGrol/checkoutwizard/services/productcatalog"
	"github.com/MarcGrol/checkoutwizard/services/tokenprovider"
	"github.com/MarcGrol/checkoutwizard/services/transaction"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	httpClient := myhttpclient.NewJSONHTTPClient()

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower, uuider)
	if err != nil {
		log.Fatalf("Error creating event publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	productStore, productStoreCleanup, err := mystore.New[productcatalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	catalogService := productcatalog.NewWebService(productStore, nower, uuider)
	catalogService.RegisterEndpoints(c, router)

	sessionStore, sessionStoreCleanup, err := mystore.New[checkoutwizard.CheckoutSession](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	wizardService := checkoutwizard.NewWebService(sessionStore, catalogService, newTokenProvider(httpClient),
		newTransactionCreator(httpClient), publisher, nower, uuider)
	err = wizardService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout wizard: %s", err)
	}

	startWebServerBlocking(router)
}

func newTokenProvider(httpClient myhttpclient.HTTPSender) tokenprovider.Provider {
	publicKey := os.Getenv("MERCHANT_PUBLIC_KEY")
	if publicKey == "" {
		log.Fatalf("missing env-var MERCHANT_PUBLIC_KEY")
	}

	// When a proxy is configured, the payment platform is reached via
	// that host instead of directly.
	proxyBaseURL := os.Getenv("PAYMENT_PROXY_BASE_URL")
	if proxyBaseURL != "" {
		return tokenprovider.NewProxiedClient(proxyBaseURL, publicKey, httpClient)
	}

	baseURL := os.Getenv("PAYMENT_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://sandbox.wompi.co"
	}

	return tokenprovider.NewDirectClient(baseURL, publicKey, httpClient)
}

func newTransactionCreator(httpClient myhttpclient.HTTPSender) transaction.Creator {
	baseURL := os.Getenv("TRANSACTION_API_BASE_URL")
	if baseURL == "" {
		log.Fatalf("missing env-var TRANSACTION_API_BASE_URL")
	}

	return transaction.NewClient(baseURL, httpClient)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
