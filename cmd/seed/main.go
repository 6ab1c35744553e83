package main

import (
	"log"
	"time"

	"github.com/ecosort/waste-management-api/internal/config"
	"github.com/ecosort/waste-management-api/internal/database"
	"github.com/ecosort/waste-management-api/internal/models"
	"github.com/ecosort/waste-management-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Seeds zones, employees, and tasks for local development. All seeded
// accounts share the same placeholder password.
const seedPassword = "ecosort-dev-password"

func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	zones := []models.Zone{
		{
			Name:           "Harbor District",
			Description:    "Waterfront commercial area with high weekend volume",
			AreaSize:       4.2,
			Population:     18500,
			CollectionDays: []string{"monday", "wednesday", "friday"},
			CollectionFrom: "06:00",
			CollectionTo:   "10:00",
			ManagerName:    "Dana Reyes",
			Active:         true,
		},
		{
			Name:           "Northgate Residential",
			Description:    "Suburban housing blocks north of the ring road",
			AreaSize:       7.8,
			Population:     34200,
			CollectionDays: []string{"tuesday", "thursday", "saturday"},
			CollectionFrom: "07:00",
			CollectionTo:   "12:00",
			ManagerName:    "Priya Sharma",
			Active:         true,
		},
		{
			Name:           "Old Mill Industrial",
			Description:    "Light industrial estate, mixed recyclables",
			AreaSize:       3.1,
			Population:     2400,
			CollectionDays: []string{"monday", "thursday"},
			CollectionFrom: "05:00",
			CollectionTo:   "09:00",
			ManagerName:    "Dana Reyes",
			Active:         true,
		},
	}
	for i := range zones {
		if err := db.Create(&zones[i]).Error; err != nil {
			log.Fatalf("Failed to seed zone %q: %v", zones[i].Name, err)
		}
	}
	log.Printf("Seeded %d zones", len(zones))

	now := time.Now()
	employees := []models.Employee{
		{
			Name:     "Dana Reyes",
			Email:    "dana.reyes@ecosort.example",
			Role:     models.RoleManager,
			ZoneID:   zones[0].ID,
			HireDate: now.AddDate(-3, 0, 0),
		},
		{
			Name:     "Priya Sharma",
			Email:    "priya.sharma@ecosort.example",
			Role:     models.RoleManager,
			ZoneID:   zones[1].ID,
			HireDate: now.AddDate(-2, -4, 0),
		},
		{
			Name:     "Marcus Webb",
			Email:    "marcus.webb@ecosort.example",
			Role:     models.RoleEmployee,
			ZoneID:   zones[0].ID,
			HireDate: now.AddDate(-1, 0, 0),
		},
		{
			Name:     "Lena Okafor",
			Email:    "lena.okafor@ecosort.example",
			Role:     models.RoleEmployee,
			ZoneID:   zones[0].ID,
			HireDate: now.AddDate(0, -8, 0),
		},
		{
			Name:     "Tom Kowalski",
			Email:    "tom.kowalski@ecosort.example",
			Role:     models.RoleEmployee,
			ZoneID:   zones[1].ID,
			HireDate: now.AddDate(0, -5, 0),
		},
	}
	for i := range employees {
		code, err := utils.GenerateEmployeeCode()
		if err != nil {
			log.Fatalf("Failed to generate employee code: %v", err)
		}
		employees[i].EmployeeCode = code
		employees[i].PasswordHash = string(hash)
		employees[i].Approved = true
		employees[i].Active = true
		employees[i].Rank = models.RankForPoints(0)
		employees[i].NotifyInApp = true
		if err := db.Create(&employees[i]).Error; err != nil {
			log.Fatalf("Failed to seed employee %q: %v", employees[i].Email, err)
		}
	}
	log.Printf("Seeded %d employees", len(employees))

	due := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}
	tasks := []models.Task{
		{
			Title:            "Clear overflow at Pier 4 collection point",
			Description:      "Overflowing bins reported by the morning route",
			AssignedTo:       employees[2].ID,
			AssignedBy:       employees[0].Name,
			ZoneID:           zones[0].ID,
			Status:           models.TaskStatusPending,
			Priority:         models.TaskPriorityHigh,
			DueDate:          due(1),
			EstimatedMinutes: 45,
			Points:           60,
			Tags:             []string{"general", "overflow"},
		},
		{
			Title:            "Sort recyclables at Harbor depot",
			Description:      "Weekly plastics and glass separation",
			AssignedTo:       employees[3].ID,
			AssignedBy:       employees[0].Name,
			ZoneID:           zones[0].ID,
			Status:           models.TaskStatusPending,
			Priority:         models.TaskPriorityMedium,
			DueDate:          due(3),
			EstimatedMinutes: 120,
			Points:           80,
			Tags:             []string{"plastic", "glass"},
		},
		{
			Title:            "Inspect Northgate compost bins",
			Description:      "Quarterly contamination check",
			AssignedTo:       employees[4].ID,
			AssignedBy:       employees[1].Name,
			ZoneID:           zones[1].ID,
			Status:           models.TaskStatusPending,
			Priority:         models.TaskPriorityLow,
			DueDate:          due(7),
			EstimatedMinutes: 90,
			Points:           40,
			Tags:             []string{"organic"},
		},
	}
	for i := range tasks {
		tasks[i].Active = true
		if err := db.Create(&tasks[i]).Error; err != nil {
			log.Fatalf("Failed to seed task %q: %v", tasks[i].Title, err)
		}
	}
	log.Printf("Seeded %d tasks", len(tasks))

	log.Println("Seed completed")
}
