package server

// Server объединяет HTTP-серверы админки и витрины.
type Server struct {
	PhraseServer
	FortuneServer

	adminToken string
}

func NewServer(
	phraseServer PhraseServer,
	fortuneServer FortuneServer,
	adminToken string,
) Server {
	return Server{
		PhraseServer:  phraseServer,
		FortuneServer: fortuneServer,
		adminToken:    adminToken,
	}
}
