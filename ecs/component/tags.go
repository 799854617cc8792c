package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type FloorTag struct{}

var FloorTagComponent = NewComponent[FloorTag]()

type BackgroundTag struct{}

var BackgroundTagComponent = NewComponent[BackgroundTag]()

type MenuTag struct{}

var MenuTagComponent = NewComponent[MenuTag]()

type GameOverTag struct{}

var GameOverTagComponent = NewComponent[GameOverTag]()
