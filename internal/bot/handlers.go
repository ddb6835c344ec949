package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tutorbot_backend/internal/util"
	"tutorbot_backend/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const helpText = "Estos son los comandos que puedes usar:\n" +
	"/start - Inicia la interacción con el bot\n" +
	"/help - Obtén ayuda sobre cómo usar el bot\n" +
	"/topics - Lista todos los temas\n" +
	"/topic [tema] - Muestra una descripción del tema\n" +
	"/ask [pregunta] - Haz una pregunta al bot\n" +
	"/exercise [tema] - Solicita un ejercicio de un tema específico\n" +
	"/hint [número del ejercicio] - Solicita una pista para resolver el ejercicio\n" +
	"/solution [número del ejercicio] - Solicita la solución del ejercicio\n" +
	"/submit [número del ejercicio] - Envía tu solución para ser evaluada y recibir retroalimentación."

func userIDOf(msg *tgbotapi.Message) string {
	return strconv.FormatInt(msg.From.ID, 10)
}

// replyServiceError renders a service failure. Expected failures carry their
// own localized message; store failures get the command-specific fallback and
// are reported back to the caller for logging.
func (b *Bot) replyServiceError(msg *tgbotapi.Message, err error, fallback string) error {
	if util.KindOf(err) == util.KindStoreFailure {
		b.reply(msg, fallback)
		return err
	}
	b.reply(msg, util.UserMessage(err))
	return nil
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	userID := userIDOf(msg)

	student, err := b.students.GetStudent(userID)
	if err == nil {
		b.reply(msg, fmt.Sprintf("¡Hola, %s! 👋 Bienvenido de nuevo. Escribe /help para ver qué puedes hacer.", student.FirstName))
		return nil
	}
	if util.KindOf(err) == util.KindNotFound {
		if err := b.conversations.Set(ctx, userID, &conversationState{Step: stateAwaitingFirstName}); err != nil {
			b.reply(msg, "Ocurrió un error al procesar tu solicitud :(.")
			return err
		}
		b.reply(msg, "¡Hola! 👋 Parece que es la primera vez que usas este bot. Por favor, ingresa tu nombre:")
		return nil
	}
	b.reply(msg, "Ocurrió un error al procesar tu solicitud :(.")
	return err
}

// handleText continues whichever conversation the student has open. Text
// outside a conversation is ignored, matching how commands are the only
// entry points.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := userIDOf(msg)

	state, err := b.conversations.Get(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to load conversation state", zap.Error(err))
		return
	}
	if state == nil {
		return
	}

	switch state.Step {
	case stateAwaitingFirstName:
		err = b.handleFirstNameInput(ctx, msg, state)
	case stateAwaitingLastName:
		err = b.handleLastNameInput(ctx, msg, state)
	case stateAwaitingCode:
		err = b.handleCodeInput(ctx, msg, state)
	default:
		err = b.conversations.Clear(ctx, userID)
	}
	if err != nil {
		logger.Log.Error("conversation step failed",
			zap.String("step", state.Step), zap.Error(err))
	}
}

func (b *Bot) handleFirstNameInput(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	state.Step = stateAwaitingLastName
	state.FirstName = strings.TrimSpace(msg.Text)
	if err := b.conversations.Set(ctx, userIDOf(msg), state); err != nil {
		b.reply(msg, "Ocurrió un error al registrarte en el sistema :(.")
		return err
	}
	b.reply(msg, fmt.Sprintf("Gracias, %s. Ahora, ingresa tus apellidos:", state.FirstName))
	return nil
}

func (b *Bot) handleLastNameInput(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	userID := userIDOf(msg)
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	lastName := strings.TrimSpace(msg.Text)

	student, err := b.students.CreateStudent(userID, chatID, state.FirstName, lastName)
	if err != nil {
		_ = b.conversations.Clear(ctx, userID)
		return b.replyServiceError(msg, err, "Ocurrió un error al registrarte en el sistema :(.")
	}
	if err := b.conversations.Clear(ctx, userID); err != nil {
		return err
	}
	b.reply(msg, fmt.Sprintf("¡Gracias, %s %s! 🎉 Ahora estás registrado. Escribe /help para ver qué puedes hacer.",
		student.FirstName, student.LastName))
	return nil
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	b.reply(msg, helpText)
	return nil
}

func (b *Bot) handleTopics(ctx context.Context, msg *tgbotapi.Message) error {
	topics, err := b.topics.GetAll(ctx)
	if err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error al obtener la lista de temas :(.")
	}
	if len(topics) == 0 {
		b.reply(msg, "No hay temas disponibles en este momento.")
		return nil
	}

	var list strings.Builder
	for _, topic := range topics {
		list.WriteString("- ")
		list.WriteString(topic.Name)
		list.WriteString("\n")
	}
	b.reply(msg, "Estos son los temas disponibles:\n"+strings.TrimRight(list.String(), "\n"))
	return nil
}

func (b *Bot) handleTopicDescription(msg *tgbotapi.Message) error {
	topicName := strings.TrimSpace(msg.CommandArguments())
	if topicName == "" {
		b.reply(msg, "Por favor, indica un tema para mostrar su descripción.")
		return nil
	}

	topic, err := b.topics.GetByName(topicName)
	if err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error al obtener la descripción del tema :(.")
	}
	b.reply(msg, topic.Description)
	return nil
}

func (b *Bot) handleAsk(ctx context.Context, msg *tgbotapi.Message) error {
	question := strings.TrimSpace(msg.CommandArguments())
	if question == "" {
		b.reply(msg, "Por favor, envía una pregunta válida. La pregunta no puede ser vacía.")
		return nil
	}

	b.reply(msg, "Pensando... 🤔")

	// Questions do not require registration; history is only attributed
	// when the student is known.
	var studentID uint
	if student, err := b.students.GetStudent(userIDOf(msg)); err == nil {
		studentID = student.ID
	}

	answer, err := b.qa.Ask(ctx, studentID, question)
	if err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error al procesar tu pregunta. Intenta nuevamente más tarde.")
	}
	b.replyMarkdown(msg, util.FormatWithCodeBlocks(answer.Answer))
	return nil
}

func (b *Bot) handleExerciseRequest(msg *tgbotapi.Message) error {
	topicName := strings.TrimSpace(msg.CommandArguments())
	if topicName == "" {
		b.reply(msg, "Por favor, indica un tema para recomendar ejercicios.")
		return nil
	}

	exercise, err := b.exercises.RecommendExercise(userIDOf(msg), topicName)
	if err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error mientras intentaba recomendarte un ejercicio :(.")
	}

	title := util.EscapeMarkdownV2(exercise.Title)
	body := util.LatexToMarkdownV2(exercise.Description)
	b.replyMarkdown(msg, fmt.Sprintf("*%d\\. %s*\n\n%s", exercise.ID, title, body))
	return nil
}

func (b *Bot) handleHintRequest(msg *tgbotapi.Message) error {
	exerciseID, ok := parseExerciseID(msg.CommandArguments())
	if !ok {
		b.reply(msg, "Por favor, indica el número del ejercicio para sugerir una pista.")
		return nil
	}

	hint, err := b.hints.GiveHint(userIDOf(msg), exerciseID)
	if err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error mientras intentaba sugerirte una pista :(.")
	}
	b.reply(msg, hint.HintText)
	return nil
}

func (b *Bot) handleSolutionRequest(msg *tgbotapi.Message) error {
	exerciseID, ok := parseExerciseID(msg.CommandArguments())
	if !ok {
		b.reply(msg, "Por favor, indica el número del ejercicio para darte la solución.")
		return nil
	}

	solution, err := b.exercises.GetSolution(exerciseID)
	if err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error mientras intentaba darte la solución :(.")
	}
	b.replyMarkdown(msg, util.FormatWithCodeBlocks(solution))
	return nil
}

func (b *Bot) handleSubmitStart(ctx context.Context, msg *tgbotapi.Message) error {
	exerciseID, ok := parseExerciseID(msg.CommandArguments())
	if !ok {
		b.reply(msg, "Por favor, proporciona el número del ejercicio. Ejemplo: /submit 1")
		return nil
	}

	state := &conversationState{Step: stateAwaitingCode, ExerciseID: exerciseID}
	if err := b.conversations.Set(ctx, userIDOf(msg), state); err != nil {
		b.reply(msg, "Ocurrió un error al guardar el intento :(.")
		return err
	}
	b.reply(msg, fmt.Sprintf("Ahora introduce el código para el ejercicio '%d'.", exerciseID))
	return nil
}

func (b *Bot) handleCodeInput(ctx context.Context, msg *tgbotapi.Message, state *conversationState) error {
	userID := userIDOf(msg)
	if err := b.conversations.Clear(ctx, userID); err != nil {
		return err
	}

	if err := b.submissions.SubmitCode(userID, state.ExerciseID, msg.Text); err != nil {
		return b.replyServiceError(msg, err, "Ocurrió un error al guardar el intento :(.")
	}
	b.reply(msg, fmt.Sprintf("¡Intento guardado para el ejercicio '%d'!", state.ExerciseID))
	return nil
}

func (b *Bot) handleCancel(ctx context.Context, msg *tgbotapi.Message) error {
	if err := b.conversations.Clear(ctx, userIDOf(msg)); err != nil {
		return err
	}
	b.reply(msg, "Proceso cancelado.")
	return nil
}

func parseExerciseID(args string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(args), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
