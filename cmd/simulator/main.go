package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dom/scrim-team-builder/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "full":
		fullCmd(apiURL, args)
	case "populate":
		populateCmd(apiURL, args)
	case "bench":
		benchCmd(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Scrim Simulator - Development tool for the team builder

USAGE:
  simulator <command> [options]

COMMANDS:
  full      Create a team with 10 members, save a draft, generate teams and record a result
  populate  Add fake members to an existing team
  bench     Compare team builder strategies offline on random constraints
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:8080)

EXAMPLES:
  # Create a ready-to-generate team and play one game
  simulator full

  # Only set up the roster and draft, leave generating to the UI
  simulator full --skip-generate

  # Add 5 more members to an existing team
  simulator populate --team=<team id> --count=5

  # Run 2000 random scenarios through both strategies
  simulator bench --runs=2000 --seed=7`)
}

func fullCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("full", flag.ExitOnError)
	skipGenerate := fs.Bool("skip-generate", false, "Stop after saving the draft")
	winner := fs.String("winner", "BLUE", "Side recorded as the winner (BLUE or RED)")
	fs.Parse(args)

	if _, err := domain.ParseSide(*winner); err != nil {
		fmt.Println("Error: --winner must be BLUE or RED")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Scrim Simulator: Full Flow ===")
	fmt.Println()

	// 1. Create team
	fmt.Print("Creating team... ")
	team, err := client.CreateTeam("SimTeam")
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (team: %s)\n", team.Name)

	// 2. Add ten members, two per main position
	fmt.Println()
	fmt.Println("Adding 10 members:")
	members := make([]*Member, 0, 10)
	for i := 0; i < 10; i++ {
		role := domain.AllRoles[i%domain.RoleCount]
		member, err := client.AddMember(team.ID, fmt.Sprintf("Player%d", i+1), string(role))
		if err != nil {
			fmt.Printf("  [%d/10] FAILED: %v\n", i+1, err)
			os.Exit(1)
		}
		members = append(members, member)
		fmt.Printf("  [%d/10] %s (%s)\n", i+1, member.Nickname, role.DisplayName())
	}

	// 3. Save a draft with a premade duo and two fixed players
	fmt.Println()
	fmt.Print("Saving draft... ")
	state := DraftState{
		Version:           domain.TeamBuilderStateVersion,
		PlayerConstraints: map[string]Constraint{},
		Groups:            map[string][]string{},
		UpdatedAt:         time.Now(),
	}
	for _, m := range members {
		state.SelectedPlayerIDs = append(state.SelectedPlayerIDs, m.ID)
	}
	state.PlayerConstraints[members[2].ID] = Constraint{FixedPosition: true, SelectedPositions: []string{string(domain.RoleMid)}}
	state.PlayerConstraints[members[3].ID] = Constraint{FixedPosition: true, SelectedPositions: []string{string(domain.RoleADC), string(domain.RoleSupport)}}
	state.Groups["duo"] = []string{members[3].ID, members[4].ID}

	if _, err := client.SaveDraft(team.ID, state); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	if *skipGenerate {
		printTeamSummary(team, "DRAFT SAVED")
		return
	}

	// 4. Generate from the draft
	fmt.Print("Generating teams... ")
	generation, err := client.GenerateFromDraft(team.ID)
	if err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK (%s, %d attempt(s))\n", generation.Strategy, generation.Attempts)

	fmt.Println()
	printLineup("BLUE", generation.Blue)
	printLineup("RED", generation.Red)

	// 5. Record the result
	fmt.Println()
	fmt.Printf("Recording %s win... ", *winner)
	if err := client.RecordWin(team.ID, generation.ID, *winner); err != nil {
		fmt.Printf("FAILED\n  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")

	printTeamSummary(team, "GAME RECORDED")
}

func populateCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	teamID := fs.String("team", "", "Team ID (required)")
	count := fs.Int("count", 10, "Number of members to add")
	fs.Parse(args)

	if *teamID == "" {
		fmt.Println("Error: --team is required")
		fmt.Println("\nUsage: simulator populate --team=<team id> [--count=10]")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	team, err := client.GetTeam(*teamID)
	if err != nil {
		fmt.Printf("Failed to get team: %v\n", err)
		os.Exit(1)
	}

	existing, err := client.ListMembers(team.ID)
	if err != nil {
		fmt.Printf("Failed to list members: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Adding %d members to %s (%d already on the roster)...\n\n", *count, team.Name, len(existing))

	for i := 0; i < *count; i++ {
		n := len(existing) + i
		role := domain.AllRoles[n%domain.RoleCount]
		member, err := client.AddMember(team.ID, fmt.Sprintf("Player%d", n+1), string(role))
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED: %v\n", i+1, *count, err)
			continue
		}
		fmt.Printf("  [%d/%d] %s added\n", i+1, *count, member.Nickname)
	}

	fmt.Println()
	fmt.Println("Done!")
}

func printLineup(side string, slots []Slot) {
	fmt.Printf("  %s\n", side)
	for _, s := range slots {
		fmt.Printf("    %-8s %s\n", domain.Role(s.Position).DisplayName(), s.Nickname)
	}
}

func printTeamSummary(team *Team, title string) {
	fmt.Println()
	fmt.Println("=========================================")
	fmt.Printf("  %s\n", title)
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Printf("  Team:    %s\n", team.Name)
	fmt.Printf("  Team ID: %s\n", team.ID)
	fmt.Println()
}
