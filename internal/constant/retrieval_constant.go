package constant

// QueryRewritePrompt expands a terse user query into a retrieval-friendly one.
// The rewrite must stay in the language of the original question.
const QueryRewritePrompt = `你是一个检索查询改写助手。请把用户的问题改写成更完整、更适合向量检索的查询语句。
要求：
1. 保留原问题的全部关键信息，不要改变语义。
2. 改写后的查询必须使用与原问题相同的语言。
3. 只输出改写后的查询本身，不要任何解释或前缀。

原问题：%s`

// KeywordExtractionPrompt asks the model for comma-separated keywords of a
// document chunk. Used during ingestion enrichment.
const KeywordExtractionPrompt = `请从下面的文本中提取最多 %d 个最能代表其内容的关键词。
只输出关键词本身，用英文逗号分隔，不要编号，不要任何解释。

文本：
%s`
