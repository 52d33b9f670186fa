// Command token prints an access token for a user id, signed with the
// server's secret key. It reads the same config file and flags as the
// server (-c, -s, -t) plus -user.
package main

import (
	"fmt"
	"log"

	"github.com/dmitrijs2005/dogbox/internal/flagx"
	"github.com/dmitrijs2005/dogbox/internal/server/auth"
	"github.com/dmitrijs2005/dogbox/internal/server/config"
)

func main() {

	cfg := config.LoadConfig()

	userID := flagx.StringFlag("user", "", "user id to issue the token for")
	if userID == "" {
		log.Fatal("-user is required")
	}

	token, err := auth.GenerateToken(userID, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		log.Fatalf("token error: %v", err)
	}

	fmt.Println(token)
}
