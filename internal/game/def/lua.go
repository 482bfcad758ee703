package def

import (
	"fmt"

	"github.com/Shopify/go-lua"
)

const boardTypeName = "board"

// LoadLuaFile runs a board script and returns the Definition it builds.
// Scripts construct a builder with Board.new() and must return it:
//
//	local b = Board.new()
//	b:disease("Blue", 24)
//	b:city("Atlanta", "Blue")
//	b:route("Atlanta", "Chicago")
//	b:role("Medic")
//	b:special("special_airlift")
//	b:rates(2, 2, 2, 3, 3, 4, 4)
//	b:initial_infections(3, 3, 3, 2, 2, 2, 1, 1, 1)
//	b:initial_deal(2, 4)
//	b:hand_limit(7)
//	b:max_outbreaks(7)
//	b:research_centers(6)
//	b:start("Atlanta")
//	return b
func LoadLuaFile(path string) (Definition, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerBoardType(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return Definition{}, fmt.Errorf("load board script: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return Definition{}, fmt.Errorf("run board script: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return Definition{}, fmt.Errorf("board script must return a Board")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	board, ok := ud.(*Definition)
	if !ok || board == nil {
		return Definition{}, fmt.Errorf("board script returned an invalid Board")
	}
	if err := board.Validate(); err != nil {
		return Definition{}, fmt.Errorf("board script: %w", err)
	}
	return *board, nil
}

func registerBoardType(state *lua.State) {
	lua.NewMetaTable(state, boardTypeName)
	state.NewTable()
	lua.SetFunctions(state, boardMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, boardConstructor, 0)
	state.SetGlobal("Board")
}

var boardConstructor = []lua.RegistryFunction{
	{Name: "new", Function: boardNew},
}

var boardMethods = []lua.RegistryFunction{
	{Name: "disease", Function: boardDisease},
	{Name: "city", Function: boardCity},
	{Name: "route", Function: boardRoute},
	{Name: "role", Function: boardRole},
	{Name: "special", Function: boardSpecial},
	{Name: "rates", Function: boardRates},
	{Name: "initial_infections", Function: boardInitialInfections},
	{Name: "initial_deal", Function: boardInitialDeal},
	{Name: "hand_limit", Function: boardHandLimit},
	{Name: "max_outbreaks", Function: boardMaxOutbreaks},
	{Name: "research_centers", Function: boardResearchCenters},
	{Name: "start", Function: boardStart},
}

func boardNew(state *lua.State) int {
	board := &Definition{InitialPlayerCards: map[int]int{}}
	state.PushUserData(board)
	lua.SetMetaTableNamed(state, boardTypeName)
	return 1
}

func checkBoard(state *lua.State) *Definition {
	ud := lua.CheckUserData(state, 1, boardTypeName)
	if board, ok := ud.(*Definition); ok && board != nil {
		return board
	}
	lua.ArgumentError(state, 1, "board expected")
	return nil
}

func boardDisease(state *lua.State) int {
	board := checkBoard(state)
	name := lua.CheckString(state, 2)
	cubes := lua.CheckInteger(state, 3)
	board.Diseases = append(board.Diseases, Disease{Name: name, Cubes: cubes})
	return 0
}

func boardCity(state *lua.State) int {
	board := checkBoard(state)
	name := lua.CheckString(state, 2)
	disease := lua.CheckString(state, 3)
	board.Locations = append(board.Locations, Location{Name: name, Disease: disease})
	return 0
}

func boardRoute(state *lua.State) int {
	board := checkBoard(state)
	from := lua.CheckString(state, 2)
	to := lua.CheckString(state, 3)
	board.Routes = append(board.Routes, Route{from, to})
	return 0
}

func boardRole(state *lua.State) int {
	board := checkBoard(state)
	board.Roles = append(board.Roles, lua.CheckString(state, 2))
	return 0
}

func boardSpecial(state *lua.State) int {
	board := checkBoard(state)
	board.Specials = append(board.Specials, lua.CheckString(state, 2))
	return 0
}

func boardRates(state *lua.State) int {
	board := checkBoard(state)
	board.InfectionRates = checkIntegerArgs(state)
	return 0
}

func boardInitialInfections(state *lua.State) int {
	board := checkBoard(state)
	board.InitialInfections = checkIntegerArgs(state)
	return 0
}

func boardInitialDeal(state *lua.State) int {
	board := checkBoard(state)
	players := lua.CheckInteger(state, 2)
	cards := lua.CheckInteger(state, 3)
	board.InitialPlayerCards[players] = cards
	return 0
}

func boardHandLimit(state *lua.State) int {
	board := checkBoard(state)
	board.MaxPlayerCards = lua.CheckInteger(state, 2)
	return 0
}

func boardMaxOutbreaks(state *lua.State) int {
	board := checkBoard(state)
	board.MaxOutbreaks = lua.CheckInteger(state, 2)
	return 0
}

func boardResearchCenters(state *lua.State) int {
	board := checkBoard(state)
	board.ResearchCentersAvailable = lua.CheckInteger(state, 2)
	return 0
}

func boardStart(state *lua.State) int {
	board := checkBoard(state)
	board.StartingLocation = lua.CheckString(state, 2)
	return 0
}

// checkIntegerArgs collects every argument after the receiver.
func checkIntegerArgs(state *lua.State) []int {
	var values []int
	for i := 2; i <= state.Top(); i++ {
		values = append(values, lua.CheckInteger(state, i))
	}
	return values
}
