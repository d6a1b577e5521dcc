package aihub

import "fmt"

// holidaySchemaJSON is the JSON Schema embedded in the parser prompt. It
// mirrors the holiday.Record wire contract and must stay in sync with it.
const holidaySchemaJSON = `{
  "type": "object",
  "properties": {
    "holiday_name": {"type": "string", "description": "节假日名称"},
    "year": {"type": "integer", "description": "年份"},
    "month": {"type": "integer", "description": "主要放假月份"},
    "start_date": {"type": "string", "format": "date", "description": "开始日期 (YYYY-MM-DD)"},
    "end_date": {"type": "string", "format": "date", "description": "结束日期 (YYYY-MM-DD)"},
    "total_days": {"type": "integer", "description": "总天数"},
    "holiday_dates": {
      "type": "array",
      "items": {"type": "string", "format": "date"},
      "description": "所有放假日期列表 (YYYY-MM-DD)"
    },
    "makeup_workdays": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "date": {"type": "string", "format": "date"},
          "description": {"type": "string"}
        }
      },
      "description": "调休安排（需要上班的周末）"
    },
    "calendar_months": {
      "type": "array",
      "items": {"type": "integer"},
      "description": "需要显示的月份列表"
    },
    "notes": {"type": "string", "description": "额外备注信息"}
  },
  "required": ["holiday_name", "year", "month", "start_date", "end_date", "total_days", "holiday_dates"]
}`

const parserPromptFormat = `你是一个专业的节假日排班数据解析专家。你的任务是将非结构化的放假通知文本转换为下游画图工具可用的精确 JSON 数据。

**输入上下文：**
参考年份：%d (如果文本中未指明年份，请默认使用此年份)
当前文本：
%s

**解析步骤与规则（请严格遵守）：**

1. **日期计算逻辑：**
   - 必须算出 ` + "`start_date`" + ` 到 ` + "`end_date`" + ` 之间的每一天，填入 ` + "`holiday_dates`" + ` 数组。
   - **不要遗漏中间的日期**。例如：1日到5日，必须包含1,2,3,4,5号。

2. **补班（重点解析）：**
   - 仔细查找文本中包含 **"上班"、"补班"、"调休"** 字样的句子。
   - 通常格式为："X月X日（星期X）上班"。
   - 将这些日期提取到 ` + "`makeup_workdays`" + ` 数组中。
   - 如果文本中明确写了"无调休"或没提补班，该数组为空。
   - 确保补班日期的年份与放假年份一致。

3. **格式约束：**
   - 日期必须是 ` + "`YYYY-MM-DD`" + ` 格式。
   - ` + "`calendar_months`" + ` 应该包含日历需要显示的所有月份。
   - 只返回纯 JSON，不要包含 Markdown 标记（` + "```json ... ```" + `）。

JSON Schema:
%s

请直接返回 JSON 数据：
`

// BuildParsePrompt renders the parsing instruction for one announcement.
// The reference year resolves announcements that never state a year.
func BuildParsePrompt(holidayText string, refYear int) string {
	return fmt.Sprintf(parserPromptFormat, refYear, holidayText, holidaySchemaJSON)
}

// enhanceBasePrompt constrains the image model to polish the base calendar
// without touching its layout, text or color coding.
const enhanceBasePrompt = `Enhance and polish this UI design of a holiday calendar. The goal is to make it more elegant, modern, and professional.

**CRITICAL INSTRUCTIONS (MUST FOLLOW):**
1. **Strictly preserve the original layout and structure.** Do not move the header, metadata, or the calendar grid.
2. **Ensure 100% accuracy and legibility of all text and numbers.** All Chinese characters ("春节", "休", "班") and dates must be perfectly identical to the original image.
3. **Maintain the core color-coding logic:** a red mark for holidays ("休") and a blue mark for workdays ("班").

**Allowed enhancements:**
- Refine the color palette to be more harmonious and sophisticated.
- Improve typography for better visual hierarchy and elegance.
- Add subtle, soft drop shadows to the main card for a gentle sense of depth (Material Design or neumorphism lite).
- Replace the simple background gradient with a more refined, abstract, or soft-focus background.

**Keywords:** UI/UX design, minimalist, clean, sharp focus, high detail, Behance, Dribbble, professional graphic design.`

const negativePrompt = `major layout changes, different text, incorrect numbers, wrong dates, illegible characters, distorted grid, blurry, pixelated, hand-drawn, cartoon, 3D render, photo, cluttered, messy, watermark, signature.`

// BuildEnhancePrompt assembles the full image-to-image instruction: the base
// constraints, the style preset's flavor line, an optional user supplement,
// and the avoid list.
func BuildEnhancePrompt(stylePrompt, custom string) string {
	p := enhanceBasePrompt
	if stylePrompt != "" {
		p += "\n\n**Style direction:** " + stylePrompt
	}
	if custom != "" {
		p += "\n\n**Additional requirements:** " + custom
	}
	p += "\n\n**Avoid:**\n" + negativePrompt
	return p
}
