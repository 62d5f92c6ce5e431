// cmd/seed - imports the course fixture (teams, checkpoints, tasks)
// into the event store before the event starts. Reference data is
// seeded exactly once; rerunning against a seeded store is a no-op.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"racelog/database"
	"racelog/models"
)

type fixture struct {
	Teams []struct {
		Name string `json:"name"`
	} `json:"teams"`
	Checkpoints []struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
		Tasks    []struct {
			Name   string `json:"name"`
			Points int    `json:"points"`
		} `json:"tasks"`
	} `json:"checkpoints"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	path := "./seed/course.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read fixture:", err)
	}

	var course fixture
	if err := json.Unmarshal(data, &course); err != nil {
		log.Fatal("Failed to parse fixture:", err)
	}

	for _, cp := range course.Checkpoints {
		for _, task := range cp.Tasks {
			if task.Points < 0 {
				log.Fatalf("Task %q has negative points", task.Name)
			}
		}
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to open event store:", err)
	}
	defer database.Close(db)

	var existing int64
	if err := db.Model(&models.Team{}).Count(&existing).Error; err != nil {
		log.Fatal("Failed to inspect store:", err)
	}
	if existing > 0 {
		log.Println("Store already seeded, nothing to do")
		return
	}

	for _, team := range course.Teams {
		row := models.Team{
			Name:     team.Name,
			JoinCode: uuid.NewString(),
		}
		if err := db.Create(&row).Error; err != nil {
			log.Fatal("Failed to seed team:", err)
		}
		fmt.Printf("Team %-20s code %s\n", row.Name, row.JoinCode)
	}

	for _, cp := range course.Checkpoints {
		row := models.Checkpoint{
			Name:     cp.Name,
			Position: cp.Position,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Fatal("Failed to seed checkpoint:", err)
		}

		for _, task := range cp.Tasks {
			taskRow := models.Task{
				CheckpointID: row.ID,
				Name:         task.Name,
				Points:       task.Points,
			}
			if err := db.Create(&taskRow).Error; err != nil {
				log.Fatal("Failed to seed task:", err)
			}
		}
		fmt.Printf("Checkpoint %-14s with %d tasks\n", cp.Name, len(cp.Tasks))
	}

	fmt.Printf("\nSeeded %d teams, %d checkpoints\n", len(course.Teams), len(course.Checkpoints))
}
