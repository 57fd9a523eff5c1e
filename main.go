package main

import (
	"log"
	"net/http"
	"os"

	"github.com/kasumba/go-storefront/app/cmd"
	"github.com/kasumba/go-storefront/app/configs"
	"github.com/kasumba/go-storefront/app/routes"
)

func main() {

	configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router := routes.NewRouter(db)

	server := http.Server{
		Addr:    configs.LoadENV.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
