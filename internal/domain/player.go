package domain

type PlayerID string

const (
	Player1 = PlayerID("player1")
	Player2 = PlayerID("player2")
)

const defaultPlayerName = "You"

type Player struct {
	id         PlayerID
	name       string
	isComputer bool
	board      *Board
}

func NewPlayer(id PlayerID, name string, isComputer bool) *Player {
	if name == "" {
		name = defaultPlayerName
	}
	return &Player{
		id:         id,
		name:       name,
		isComputer: isComputer,
		board:      NewBoard(),
	}
}

func (p *Player) ID() PlayerID {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) IsComputer() bool {
	return p.isComputer
}

func (p *Player) Board() *Board {
	return p.board
}
