package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const apiBase = "http://localhost:8080/api/v1"

type game struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
}

var demoCatalog = []game{
	{"Hollow Knight", "Explore a vast, ruined kingdom of insects and heroes.", []string{"Metroidvania", "Action"}},
	{"Stardew Valley", "Build the farm of your dreams.", []string{"Simulation", "RPG"}},
	{"Celeste", "Climb the mountain. A tight platformer about perseverance.", []string{"Platformer"}},
	{"Outer Wilds", "A solar system trapped in a time loop.", []string{"Adventure", "Exploration"}},
	{"Hades", "Defy the god of the dead in a rogue-like dungeon crawler.", []string{"Rogue-like", "Action"}},
	{"Disco Elysium", "A detective RPG with no combat.", []string{"RPG"}},
}

// Seeds a demo catalog through the API. Needs an account that already holds
// the Admin role; promotion is a manual DB step.
func main() {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		fmt.Println("ADMIN_USERNAME and ADMIN_PASSWORD are required")
		os.Exit(1)
	}

	token, err := login(username, password)
	if err != nil {
		fmt.Printf("login failed: %v\n", err)
		os.Exit(1)
	}

	for _, g := range demoCatalog {
		status, err := addGame(token, g)
		switch {
		case err != nil:
			fmt.Printf("  %s: %v\n", g.Title, err)
		case status == http.StatusCreated:
			fmt.Printf("  added %s\n", g.Title)
		case status == http.StatusConflict:
			fmt.Printf("  skipped %s (already in catalog)\n", g.Title)
		default:
			fmt.Printf("  %s: unexpected status %d\n", g.Title, status)
		}
	}
}

func login(username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, data)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", err
	}
	return loginResp.Token, nil
}

func addGame(token string, g game) (int, error) {
	body, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, apiBase+"/games", bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
