package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/fiberplant/pkg/colorcode"
	"github.com/dd0wney/fiberplant/pkg/config"
	"github.com/dd0wney/fiberplant/pkg/logging"
	"github.com/dd0wney/fiberplant/pkg/lossbudget"
	"github.com/dd0wney/fiberplant/pkg/metrics"
	"github.com/dd0wney/fiberplant/pkg/netgraph"
	"github.com/dd0wney/fiberplant/pkg/splice"
	"github.com/dd0wney/fiberplant/pkg/store"
	"github.com/dd0wney/fiberplant/pkg/validation"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00BFFF"))

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF7F"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF4040"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type CLI struct {
	cfg     *config.Config
	logger  logging.Logger
	graph   *netgraph.Graph
	splices *splice.Store
	disk    *store.Store
	session splice.Session
	scanner *bufio.Scanner
}

func main() {
	configPath := flag.String("config", "./fiberplant.yaml", "Config file path")
	dataDir := flag.String("data", "", "Data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	registry := metrics.NewRegistry()

	spliceStore := splice.NewStore(splice.StoreConfig{Logger: logger, Metrics: registry})
	graph := netgraph.NewGraph(netgraph.GraphConfig{
		Splices: spliceStore,
		Logger:  logger,
		Metrics: registry,
	})

	disk, err := store.Open(cfg.DataDir, store.Config{EnableCompression: cfg.EnableCompression})
	if err != nil {
		fmt.Printf("❌ Failed to open data directory %s: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}

	printBanner()

	fmt.Printf("📂 Loading project from %s...\n", cfg.DataDir)
	project, err := disk.RestoreTo(graph, spliceStore)
	if err != nil {
		fmt.Printf("❌ Failed to restore project: %v\n", err)
		os.Exit(1)
	}
	name := project.Name
	if name == "" {
		name = cfg.ProjectName
	}
	fmt.Printf("✅ Project %q loaded\n", name)
	fmt.Printf("   Elements: %d\n", graph.Len())
	fmt.Printf("   Splices:  %d\n\n", spliceStore.Len())

	defaultType := splice.Fusion
	if cfg.Session.DefaultSpliceType == string(splice.Mechanical) {
		defaultType = splice.Mechanical
	}

	cli := &CLI{
		cfg:     cfg,
		logger:  logger,
		graph:   graph,
		splices: spliceStore,
		disk:    disk,
		session: splice.Session{
			Technician:        cfg.Session.Technician,
			DefaultSpliceType: defaultType,
		},
		scanner: bufio.NewScanner(os.Stdin),
	}

	fmt.Println("Type 'help' for available commands, 'exit' to quit")
	fmt.Println()

	cli.run()
}

func printBanner() {
	fmt.Println()
	fmt.Println(titleStyle.Render("  FiberPlant — OSP Network Documentation  "))
	fmt.Println(dimStyle.Render("  elements · splice trays · color codes · loss budgets"))
	fmt.Println()
}

func (cli *CLI) run() {
	for {
		fmt.Print("fiberplant> ")

		if !cli.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(cli.scanner.Text())
		if input == "" {
			continue
		}

		if input == "exit" || input == "quit" {
			cli.save()
			fmt.Println("👋 Goodbye!")
			break
		}

		cli.executeCommand(input)
		fmt.Println()
	}
}

func (cli *CLI) executeCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])

	switch command {
	case "help":
		cli.showHelp()

	case "stats", "status":
		cli.showStats()

	case "colors":
		if len(parts) < 2 {
			fmt.Println("Usage: colors <fiber-count>")
			return
		}
		count, _ := strconv.Atoi(parts[1])
		cli.showColors(count)

	case "fiber":
		if len(parts) < 3 {
			fmt.Println("Usage: fiber <fiber-number> <fiber-count>")
			return
		}
		number, _ := strconv.Atoi(parts[1])
		count, _ := strconv.Atoi(parts[2])
		cli.showFiber(number, count)

	case "create-element", "ce":
		cli.createElementInteractive()

	case "list", "tree":
		cli.showTree()

	case "connect":
		if len(parts) < 3 {
			fmt.Println("Usage: connect <parent-id> <child-id>")
			return
		}
		cli.connect(parts[1], parts[2])

	case "add-tray", "at":
		cli.addTrayInteractive()

	case "splice", "sp":
		cli.createSpliceInteractive()

	case "batch":
		cli.batchInteractive()

	case "splices":
		if len(parts) < 2 {
			fmt.Println("Usage: splices <tray-id>")
			return
		}
		cli.showSplices(parts[1])

	case "delete", "rm":
		if len(parts) < 2 {
			fmt.Println("Usage: delete <element-id>")
			return
		}
		cli.deleteElement(parts[1])

	case "layout":
		cli.runLayout()

	case "budget":
		cli.budgetInteractive()

	case "classes":
		cli.showEquipmentClasses()

	case "save":
		cli.save()

	case "demo":
		cli.runDemo()

	case "clear":
		fmt.Print("\033[H\033[2J")

	default:
		fmt.Printf("❌ Unknown command: %s (type 'help' for available commands)\n", command)
	}
}

func (cli *CLI) showHelp() {
	help := `
📖 Available Commands:

🎨 Color Codes:
  colors <count>        Show the tube/fiber color chart for a cable
  fiber <n> <count>     Resolve one fiber to tube and colors

🏗️  Network Elements:
  create-element        Interactive element creation
  ce                    Shorthand for create-element
  list / tree           Show the network hierarchy
  connect <p> <c>       Re-parent element c under element p
  delete <id>           Delete an element and all descendants
  layout                Auto-position elements on the canvas

🔌 Splicing:
  add-tray              Add a splice tray to an enclosure
  splice                Interactive splice entry
  batch                 Generate a 1:1 splice batch
  splices <tray-id>     List splices in a tray

📊 Loss Budget:
  budget                Interactive loss budget calculation
  classes               List optical equipment power budgets

🎮 Other:
  stats                 Show project statistics
  save                  Write the project snapshot
  demo                  Build a small demo network
  clear                 Clear screen
  help                  Show this help
  exit/quit             Save and exit
`
	fmt.Println(help)
}

func (cli *CLI) showStats() {
	summary := splice.Stats(cli.splices.All())

	fmt.Println("📊 Project Statistics:")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Elements:       %d\n", cli.graph.Len())
	for _, t := range netgraph.ElementTypes() {
		if n := len(cli.graph.ByType(t)); n > 0 {
			fmt.Printf("    %-10s %d\n", t, n)
		}
	}
	fmt.Printf("  Splices:        %d\n", summary.Total)
	fmt.Printf("    Completed:    %d\n", summary.Completed)
	fmt.Printf("    Pending:      %d\n", summary.Pending)
	if summary.Completed > 0 {
		fmt.Printf("    Avg Loss:     %.3f dB\n", summary.AvgLoss)
		fmt.Printf("    Pass Rate:    %.0f%%\n", summary.PassRate*100)
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func swatch(c colorcode.Color, text string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex)).
		Foreground(lipgloss.Color(c.Label)).
		Render(text)
}

func (cli *CLI) showColors(count int) {
	tubes := colorcode.TubesFor(count)
	if tubes == nil {
		fmt.Printf("❌ Invalid fiber count %d (valid: %v)\n", count, colorcode.ValidFiberCounts)
		return
	}

	fmt.Printf("🎨 %d-fiber cable: %d tubes × %d fibers\n\n", count, len(tubes), colorcode.FibersPerTube)
	for _, tube := range tubes {
		fmt.Printf("  Tube %2d %s  fibers %d-%d\n",
			tube.TubeNumber,
			swatch(tube.TubeColor, fmt.Sprintf(" %-6s ", tube.TubeColor.Name)),
			tube.StartFiber, tube.EndFiber)
	}

	fmt.Println("\n  Fiber positions within each tube:")
	fmt.Print("  ")
	for pos := 1; pos <= colorcode.FibersPerTube; pos++ {
		color, _ := colorcode.ColorAt(pos)
		fmt.Print(swatch(color, fmt.Sprintf(" %d:%s ", pos, color.Name)))
	}
	fmt.Println()
}

func (cli *CLI) showFiber(number, count int) {
	id, ok := colorcode.FiberInfo(number, count)
	if !ok {
		fmt.Printf("❌ Fiber %d is not valid for a %d-fiber cable\n", number, count)
		return
	}

	fmt.Printf("🔍 Fiber %d of %d:\n", number, count)
	fmt.Printf("   Tube %d      %s\n", id.TubeNumber, swatch(id.TubeColor, " "+id.TubeColor.Name+" "))
	fmt.Printf("   Position %d  %s\n", id.PositionInTube, swatch(id.FiberColor, " "+id.FiberColor.Name+" "))
}

func (cli *CLI) createElementInteractive() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🆕 Create Network Element")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━")

	fmt.Printf("Type (%s): ", strings.Join(typeNames(), "/"))
	typeStr, _ := reader.ReadString('\n')
	typeStr = strings.ToUpper(strings.TrimSpace(typeStr))

	fmt.Print("Name (empty for auto): ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Parent ID (empty for root): ")
	parentID, _ := reader.ReadString('\n')
	parentID = strings.TrimSpace(parentID)

	req := &validation.ElementRequest{Type: typeStr, Name: name, ParentID: parentID}
	if err := validation.ValidateElementRequest(req); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	elemType := netgraph.ElementType(typeStr)
	var elem *netgraph.Element
	var err error
	if parentID == "" {
		if !elemType.IsRoot() {
			fmt.Printf("❌ %s needs a parent (allowed: %v)\n", elemType, netgraph.AllowedParentTypes(elemType))
			return
		}
		elem, err = cli.graph.CreateRoot(name)
	} else {
		elem, err = cli.graph.CreateChild(parentID, elemType, name)
	}
	if err != nil {
		fmt.Printf("❌ Failed to create element: %v\n", err)
		return
	}

	fmt.Printf("\n✅ Created %s %q\n", elem.Type, elem.Name)
	fmt.Printf("   ID: %s\n", elem.ID)
}

func (cli *CLI) showTree() {
	roots := cli.graph.Roots()
	if len(roots) == 0 {
		fmt.Println("(empty network)")
		return
	}
	fmt.Println("🌳 Network Hierarchy:")
	for _, root := range roots {
		cli.printSubtree(root, "  ")
	}
}

func (cli *CLI) printSubtree(elem *netgraph.Element, indent string) {
	tag := ""
	if elem.FeedCableFibers > 0 {
		tag = dimStyle.Render(fmt.Sprintf("  ← %s (%df)", elem.FeedCableName, elem.FeedCableFibers))
	}
	fmt.Printf("%s%s %s %s%s\n", indent, elem.Type, elem.Name, dimStyle.Render(elem.ID), tag)

	children := cli.graph.ChildrenOf(elem.ID)
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	for _, child := range children {
		cli.printSubtree(child, indent+"  ")
	}
}

func (cli *CLI) connect(parentID, childID string) {
	result, err := cli.graph.Connect(parentID, childID)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	switch result.Outcome {
	case netgraph.Connected:
		fmt.Printf("✅ Connected %s under %s\n", childID, parentID)
	case netgraph.AlreadyConnected:
		fmt.Println("ℹ️  Already connected")
	default:
		fmt.Printf("❌ Rejected: %s\n", result.Reason)
	}
}

func (cli *CLI) addTrayInteractive() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🧰 Add Splice Tray")
	fmt.Println("━━━━━━━━━━━━━━━━━")

	fmt.Print("Enclosure ID: ")
	enclosureID, _ := reader.ReadString('\n')
	enclosureID = strings.TrimSpace(enclosureID)

	fmt.Print("Tray number: ")
	numberStr, _ := reader.ReadString('\n')
	number, _ := strconv.Atoi(strings.TrimSpace(numberStr))

	fmt.Print("Capacity (default 24): ")
	capStr, _ := reader.ReadString('\n')
	capacity := 24
	if s := strings.TrimSpace(capStr); s != "" {
		capacity, _ = strconv.Atoi(s)
	}

	req := &validation.TrayRequest{EnclosureID: enclosureID, Number: number, Capacity: capacity}
	if err := validation.ValidateTrayRequest(req); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	tray, err := cli.graph.AddTray(enclosureID, number, capacity)
	if err != nil {
		fmt.Printf("❌ Failed to add tray: %v\n", err)
		return
	}
	fmt.Printf("\n✅ Added tray %d (capacity %d)\n", tray.Number, tray.Capacity)
	fmt.Printf("   ID: %s\n", tray.ID)
}

func (cli *CLI) createSpliceInteractive() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("🔌 Record Splice")
	fmt.Println("━━━━━━━━━━━━━━━")

	fmt.Print("Tray ID: ")
	trayID, _ := reader.ReadString('\n')
	trayID = strings.TrimSpace(trayID)

	fmt.Print("Cable A name: ")
	cableAName, _ := reader.ReadString('\n')
	fmt.Print("Cable A fiber count: ")
	cableAFiberStr, _ := reader.ReadString('\n')
	cableAFiber, _ := strconv.Atoi(strings.TrimSpace(cableAFiberStr))

	fmt.Print("Cable B name: ")
	cableBName, _ := reader.ReadString('\n')
	fmt.Print("Cable B fiber count: ")
	cableBFiberStr, _ := reader.ReadString('\n')
	cableBFiber, _ := strconv.Atoi(strings.TrimSpace(cableBFiberStr))

	fmt.Print("Fiber A: ")
	fiberAStr, _ := reader.ReadString('\n')
	fiberA, _ := strconv.Atoi(strings.TrimSpace(fiberAStr))

	fmt.Print("Fiber B: ")
	fiberBStr, _ := reader.ReadString('\n')
	fiberB, _ := strconv.Atoi(strings.TrimSpace(fiberBStr))

	fmt.Printf("Type (fusion/mechanical, default %s): ", cli.session.DefaultSpliceType)
	typeStr, _ := reader.ReadString('\n')
	spliceType := cli.session.DefaultSpliceType
	if s := strings.TrimSpace(typeStr); s != "" {
		spliceType = splice.Type(s)
	}

	fmt.Print("Measured loss dB (empty for pending): ")
	lossStr, _ := reader.ReadString('\n')
	var loss *float64
	if s := strings.TrimSpace(lossStr); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Printf("❌ Invalid loss value: %v\n", err)
			return
		}
		loss = &v
	}

	req := &validation.SpliceRequest{
		TrayID:      trayID,
		CableAName:  strings.TrimSpace(cableAName),
		CableAFiber: cableAFiber,
		CableBName:  strings.TrimSpace(cableBName),
		CableBFiber: cableBFiber,
		FiberA:      fiberA,
		FiberB:      fiberB,
		SpliceType:  string(spliceType),
		Loss:        loss,
		Technician:  cli.session.Technician,
	}
	if err := validation.ValidateSpliceRequest(req); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	sp, outcome, err := cli.splices.Upsert(splice.UpsertInput{
		TrayID:     trayID,
		CableA:     splice.Cable{Name: req.CableAName, FiberCount: cableAFiber},
		CableB:     splice.Cable{Name: req.CableBName, FiberCount: cableBFiber},
		FiberA:     fiberA,
		FiberB:     fiberB,
		Type:       spliceType,
		Loss:       loss,
		Technician: cli.session.Technician,
	})
	if err != nil {
		fmt.Printf("❌ Failed to record splice: %v\n", err)
		return
	}

	verb := "Recorded"
	if outcome == splice.OutcomeUpdated {
		verb = "Updated"
	}
	fmt.Printf("\n✅ %s splice %s ↔ %s [%s]\n", verb, sp.A.Label(), sp.B.Label(), sp.Status)
	if sp.Loss != nil {
		grade := splice.ClassifyLoss(*sp.Loss, sp.Type)
		fmt.Printf("   Loss: %.3f dB (%s)\n", *sp.Loss, renderGrade(grade))
	}
}

func (cli *CLI) batchInteractive() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("⚡ Generate Splice Batch")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━")

	fmt.Print("Tray ID: ")
	trayID, _ := reader.ReadString('\n')
	trayID = strings.TrimSpace(trayID)

	fmt.Print("Cable A name: ")
	cableAName, _ := reader.ReadString('\n')
	fmt.Print("Cable A fiber count: ")
	cableAFiberStr, _ := reader.ReadString('\n')
	cableAFiber, _ := strconv.Atoi(strings.TrimSpace(cableAFiberStr))

	fmt.Print("Cable B name: ")
	cableBName, _ := reader.ReadString('\n')
	fmt.Print("Cable B fiber count: ")
	cableBFiberStr, _ := reader.ReadString('\n')
	cableBFiber, _ := strconv.Atoi(strings.TrimSpace(cableBFiberStr))

	fmt.Print("Start fiber A (default 1): ")
	startAStr, _ := reader.ReadString('\n')
	startA := 1
	if s := strings.TrimSpace(startAStr); s != "" {
		startA, _ = strconv.Atoi(s)
	}

	fmt.Print("Start fiber B (default 1): ")
	startBStr, _ := reader.ReadString('\n')
	startB := 1
	if s := strings.TrimSpace(startBStr); s != "" {
		startB, _ = strconv.Atoi(s)
	}

	fmt.Print("Pair count: ")
	countStr, _ := reader.ReadString('\n')
	count, _ := strconv.Atoi(strings.TrimSpace(countStr))

	req := &validation.BatchRequest{
		TrayID:      trayID,
		CableAName:  strings.TrimSpace(cableAName),
		CableAFiber: cableAFiber,
		CableBName:  strings.TrimSpace(cableBName),
		CableBFiber: cableBFiber,
		StartFiberA: startA,
		StartFiberB: startB,
		Count:       count,
	}
	if err := validation.ValidateBatchRequest(req); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	entries, err := cli.splices.GenerateBatch(cli.session, splice.BatchParams{
		TrayID:      trayID,
		CableA:      splice.Cable{Name: req.CableAName, FiberCount: cableAFiber},
		CableB:      splice.Cable{Name: req.CableBName, FiberCount: cableBFiber},
		StartFiberA: startA,
		StartFiberB: startB,
		Count:       count,
	})
	if err != nil {
		fmt.Printf("❌ Failed to generate batch: %v\n", err)
		return
	}

	result := cli.splices.CommitBatch(entries)
	fmt.Printf("\n✅ Batch committed: %d created, %d skipped (already spliced)\n",
		len(result.Created), len(result.Skipped))
}

func (cli *CLI) showSplices(trayID string) {
	splices := cli.splices.ByTray(trayID)
	if len(splices) == 0 {
		fmt.Printf("(no splices in tray %s)\n", trayID)
		return
	}

	fmt.Printf("🔌 Splices in tray %s:\n", trayID)
	fmt.Printf("  %-38s %-38s %-10s %-9s %s\n", "A", "B", "TYPE", "STATUS", "LOSS")
	fmt.Println("  " + strings.Repeat("─", 110))
	for _, sp := range splices {
		lossStr := "—"
		if sp.Loss != nil {
			grade := splice.ClassifyLoss(*sp.Loss, sp.Type)
			lossStr = fmt.Sprintf("%.3f dB %s", *sp.Loss, renderGrade(grade))
		}
		fmt.Printf("  %-38s %-38s %-10s %-9s %s\n",
			sp.A.Label(), sp.B.Label(), sp.Type, sp.Status, lossStr)
	}
	fmt.Printf("\n%d splices\n", len(splices))
}

func (cli *CLI) deleteElement(id string) {
	preview, err := cli.graph.CascadePreview(id)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	if preview.DescendantCount > 0 {
		fmt.Printf("⚠️  This will also delete %d descendant element(s) and %d tray(s)\n",
			preview.DescendantCount, preview.RemovedTrays)
		fmt.Print("Continue? (y/N): ")
		if !cli.scanner.Scan() {
			return
		}
		if strings.ToLower(strings.TrimSpace(cli.scanner.Text())) != "y" {
			fmt.Println("Cancelled")
			return
		}
	}

	result, err := cli.graph.DeleteCascade(id)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Printf("✅ Deleted %d element(s), %d tray(s), %d splice(s)\n",
		result.RemovedElements, result.RemovedTrays, result.RemovedSplices)
}

func (cli *CLI) runLayout() {
	positions := cli.graph.Layout(netgraph.DefaultLayoutOptions())
	if len(positions) == 0 {
		fmt.Println("(empty network)")
		return
	}
	if err := cli.graph.ApplyLayout(positions); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	fmt.Println("📐 Auto-layout applied:")
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		elem, err := cli.graph.Get(id)
		if err != nil {
			continue
		}
		pos := positions[id]
		fmt.Printf("  %-10s %-16s x=%-6.0f y=%.0f\n", elem.Type, elem.Name, pos.X, pos.Y)
	}
}

func (cli *CLI) budgetInteractive() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("📊 Loss Budget Calculation")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━")

	fmt.Print("Fiber type (singlemode/multimode, default singlemode): ")
	fiberTypeStr, _ := reader.ReadString('\n')
	fiberType := "singlemode"
	if s := strings.TrimSpace(fiberTypeStr); s != "" {
		fiberType = s
	}

	fmt.Print("Wavelength nm (default 1310): ")
	wavelengthStr, _ := reader.ReadString('\n')
	wavelength := 1310
	if s := strings.TrimSpace(wavelengthStr); s != "" {
		wavelength, _ = strconv.Atoi(s)
	}

	fmt.Print("Distance km: ")
	distStr, _ := reader.ReadString('\n')
	distance, _ := strconv.ParseFloat(strings.TrimSpace(distStr), 64)

	fmt.Print("Fusion splices: ")
	fusionStr, _ := reader.ReadString('\n')
	fusion, _ := strconv.Atoi(strings.TrimSpace(fusionStr))

	fmt.Print("Mechanical splices: ")
	mechStr, _ := reader.ReadString('\n')
	mech, _ := strconv.Atoi(strings.TrimSpace(mechStr))

	fmt.Print("Connector pairs: ")
	connStr, _ := reader.ReadString('\n')
	connectors, _ := strconv.Atoi(strings.TrimSpace(connStr))

	connectorType := ""
	if connectors > 0 {
		fmt.Print("Connector type (SC/LC/FC/ST/SC/APC/MPO, default SC): ")
		ctStr, _ := reader.ReadString('\n')
		connectorType = "SC"
		if s := strings.TrimSpace(ctStr); s != "" {
			connectorType = s
		}
	}

	fmt.Print("Safety margin dB (default 3): ")
	marginStr, _ := reader.ReadString('\n')
	margin := 3.0
	if s := strings.TrimSpace(marginStr); s != "" {
		margin, _ = strconv.ParseFloat(s, 64)
	}

	req := &validation.BudgetRequest{
		FiberType:         fiberType,
		WavelengthNm:      wavelength,
		DistanceKm:        distance,
		FusionSplices:     fusion,
		MechanicalSplices: mech,
		ConnectorPairs:    connectors,
		ConnectorType:     connectorType,
		MarginDb:          margin,
	}
	if err := validation.ValidateBudgetRequest(req); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	breakdown, err := lossbudget.Calculate(lossbudget.Input{
		FiberType:         lossbudget.FiberType(fiberType),
		WavelengthNm:      wavelength,
		DistanceKm:        distance,
		FusionSplices:     fusion,
		MechanicalSplices: mech,
		ConnectorPairs:    connectors,
		ConnectorType:     lossbudget.ConnectorType(connectorType),
		MarginDb:          margin,
	})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	fmt.Println("\n📊 Loss Breakdown:")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Fiber loss:       %6.2f dB\n", breakdown.FiberLoss)
	fmt.Printf("  Fusion splices:   %6.2f dB\n", breakdown.FusionLoss)
	fmt.Printf("  Mechanical:       %6.2f dB\n", breakdown.MechanicalLoss)
	fmt.Printf("  Connectors:       %6.2f dB\n", breakdown.ConnectorLoss)
	fmt.Printf("  Safety margin:    %6.2f dB\n", breakdown.MarginLoss)
	fmt.Printf("  Total:            %6.2f dB\n", breakdown.TotalLoss)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	fmt.Println("\nAgainst equipment classes:")
	for _, class := range lossbudget.EquipmentClasses() {
		verdict, err := lossbudget.CheckPowerBudget(breakdown.TotalLoss, class)
		if err != nil {
			continue
		}
		status := passStyle.Render("PASS")
		if !verdict.Pass {
			status = failStyle.Render("FAIL")
		}
		fmt.Printf("  %-14s budget %5.1f dB  margin %+6.2f dB  %s\n",
			class, verdict.BudgetDb, verdict.Margin, status)
	}
}

func (cli *CLI) showEquipmentClasses() {
	fmt.Println("📡 Optical Equipment Power Budgets:")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	for _, class := range lossbudget.EquipmentClasses() {
		fmt.Printf("  %-14s %5.1f dB\n", class, lossbudget.PowerBudgets[class])
	}
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

func (cli *CLI) save() {
	if err := cli.disk.SaveFrom(cli.cfg.ProjectName, cli.graph, cli.splices); err != nil {
		fmt.Printf("❌ Failed to save project: %v\n", err)
		return
	}
	fmt.Printf("💾 Project saved to %s\n", cli.cfg.DataDir)
}

func (cli *CLI) runDemo() {
	fmt.Println("🎮 Building demo network...")

	olt, err := cli.graph.CreateRoot("CO-DEMO")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	odf, err := cli.graph.CreateChild(olt.ID, netgraph.TypeODF, "")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	closure, err := cli.graph.CreateChild(odf.ID, netgraph.TypeClosure, "")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	cli.graph.SetEdgeCable(closure.ID, "FEEDER-01", 144)
	lcp, err := cli.graph.CreateChild(closure.ID, netgraph.TypeLCP, "")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	cli.graph.SetEdgeCable(lcp.ID, "DIST-01", 48)
	nap, err := cli.graph.CreateChild(lcp.ID, netgraph.TypeNAP, "")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	cli.graph.SetEdgeCable(nap.ID, "DROP-01", 12)

	tray, err := cli.graph.AddTray(closure.ID, 1, 24)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	entries, err := cli.splices.GenerateBatch(cli.session, splice.BatchParams{
		TrayID:      tray.ID,
		CableA:      splice.Cable{Name: "FEEDER-01", FiberCount: 144},
		CableB:      splice.Cable{Name: "DIST-01", FiberCount: 48},
		StartFiberA: 1,
		StartFiberB: 1,
		Count:       12,
	})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	result := cli.splices.CommitBatch(entries)

	fmt.Printf("✅ Demo network: OLT → ODF → Closure → LCP → NAP\n")
	fmt.Printf("   Tray %d in %s with %d splices\n", tray.Number, closure.Name, len(result.Created))
	fmt.Println()
	cli.showTree()
	fmt.Println()
	cli.runLayout()
}

func renderGrade(grade splice.Grade) string {
	switch grade {
	case splice.GradeGood, splice.GradeAcceptable:
		return passStyle.Render(string(grade))
	default:
		return failStyle.Render(string(grade))
	}
}

func typeNames() []string {
	names := make([]string, 0, 5)
	for _, t := range netgraph.ElementTypes() {
		names = append(names, string(t))
	}
	return names
}
