package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/factory"
)

// ReservationAgent handles the structured write flow. All mandatory fields
// must be present in a single turn before the write tool is touched; a turn
// with any field missing asks once for exactly the missing subset and writes
// nothing.
type ReservationAgent struct {
	providers factory.Providers
	gateway   ToolCaller
	logger    logger.ILogger
}

func NewReservationAgent(providers factory.Providers, gateway ToolCaller, log logger.ILogger) *ReservationAgent {
	return &ReservationAgent{providers: providers, gateway: gateway, logger: log}
}

func (a *ReservationAgent) Label() constant.AgentLabel {
	return constant.LabelReservation
}

// reservationFields is the extraction target. Empty string means the user
// did not provide the field this turn.
type reservationFields struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Campus string `json:"campus"`
}

const extractionPrompt = `从下面这句话中提取预约信息，以 JSON 返回：{"name": "姓名", "phone": "联系方式", "campus": "校区"}。
提取不到的字段填空字符串。只输出 JSON，不要任何解释。

用户输入：%s`

func (a *ReservationAgent) Stream(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error) {
	provider, err := a.providers.Get(req.ModelType)
	if err != nil {
		return nil, err
	}

	fields, err := a.extract(ctx, provider, req.Question)
	if err != nil {
		a.logger.Warn("agent", "reservation field extraction failed", map[string]interface{}{
			"error": err.Error(),
		})
		fields = &reservationFields{}
	}

	missing := missingFields(fields)
	if len(missing) > 0 {
		return singleChunkStream(askForMissing(missing)), nil
	}

	if _, err := a.gateway.CallTool(ctx, constant.ToolReservationWrite, map[string]interface{}{
		"name":   fields.Name,
		"phone":  fields.Phone,
		"campus": fields.Campus,
	}); err != nil {
		a.logger.Warn("agent", "reservation write unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return singleChunkStream(constant.ToolUnavailableAnswer), nil
	}

	confirmation := fmt.Sprintf("预约成功！已为 %s 预约 %s 的咨询，我们会通过 %s 与您联系。",
		fields.Name, fields.Campus, fields.Phone)
	return singleChunkStream(confirmation), nil
}

// extract runs the single-turn extraction call.
func (a *ReservationAgent) extract(ctx context.Context, provider llm.LLMProvider, question string) (*reservationFields, error) {
	raw, err := provider.Generate(ctx, fmt.Sprintf(extractionPrompt, question), llm.WithTemperature(0))
	if err != nil {
		return nil, err
	}

	// Models wrap JSON in code fences more often than not.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var fields reservationFields
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return nil, fmt.Errorf("parse extraction output: %w", err)
	}
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Phone = strings.TrimSpace(fields.Phone)
	fields.Campus = strings.TrimSpace(fields.Campus)
	return &fields, nil
}

func missingFields(f *reservationFields) []string {
	var missing []string
	if f.Name == "" {
		missing = append(missing, "姓名")
	}
	if f.Phone == "" {
		missing = append(missing, "联系方式")
	}
	if f.Campus == "" {
		missing = append(missing, "校区")
	}
	return missing
}

func askForMissing(missing []string) string {
	return fmt.Sprintf("为了帮您完成预约，请一次性提供以下信息：%s。", strings.Join(missing, "、"))
}
