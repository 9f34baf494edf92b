package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/fleetdepot/depot/cmd/app"
)

// @title           Depot API
// @version         1.0
// @description     Warehouse stock, picking and fleet sales.
//
// @contact.name   Depot Support
// @contact.email  support@fleetdepot.example
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
