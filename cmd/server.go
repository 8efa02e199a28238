package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"

	"commentsweep/api"
	"commentsweep/config"
	"commentsweep/logger"

	_ "commentsweep/docs" // Registers the generated swagger spec.
)

var standaloneServerPort string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		portToUse := standaloneServerPort
		if portToUse == "" {
			portToUse = config.AppConfig.Server.Port
		}
		if portToUse == "" {
			portToUse = "8655"
		}

		apiRouter := api.NewRouter()
		if apiRouter == nil {
			logger.Fatal("Server Command: api.NewRouter() returned nil!")
			return
		}

		mainMux := http.NewServeMux()
		mainMux.Handle("/api/", http.StripPrefix("/api", apiRouter))

		mainMux.HandleFunc("/docs/swagger.json", func(w http.ResponseWriter, r *http.Request) {
			doc, err := swag.ReadDoc()
			if err != nil {
				logger.Error("Error reading swagger doc: %v", err)
				http.Error(w, "Swagger documentation unavailable", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(doc))
		})

		mainMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("Server Command: No handler for %s, returning 404", r.URL.Path)
			http.NotFound(w, r)
		})

		logger.Info("Server Command: Listening on :%s (API under /api, spec at /docs/swagger.json)", portToUse)
		if err := http.ListenAndServe(":"+portToUse, mainMux); err != nil {
			logger.Fatal("Could not start server: %v", err)
		}
	},
}

func init() {
	serverCmd.Flags().StringVarP(&standaloneServerPort, "port", "p", "", "Port for the server to listen on (default from config)")
	rootCmd.AddCommand(serverCmd)
}
