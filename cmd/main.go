// cmd/main.go
package main

import (
	"go-wallet-api/app"

	_ "go-wallet-api/docs"
)

// @title           Wallet API
// @version         1.0
// @description     Service maintaining per-wallet balances with an immutable audit trail of operations.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
