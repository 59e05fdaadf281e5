package main

import (
	"flag"
	"fmt"
	"os"

	"darasa-schools/app/config"
	"darasa-schools/app/database"
	"darasa-schools/app/models"
	"darasa-schools/app/routes/auth"
)

func main() {
	schoolID := flag.String("school", "", "school id the user belongs to")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	firstName := flag.String("first", "", "first name")
	lastName := flag.String("last", "", "last name")
	role := flag.String("role", "admin", "role name (admin, teacher, bursar)")
	flag.Parse()

	if *schoolID == "" || *email == "" || *password == "" || *firstName == "" {
		flag.Usage()
		os.Exit(1)
	}

	config.LoadEnv()
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		SchoolID:  *schoolID,
		Email:     *email,
		Password:  hashed,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateUser(db, user, *role); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s %s (%s) as %s\n", user.FirstName, user.LastName, user.Email, *role)
}
