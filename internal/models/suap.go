package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Period maps GET /api/ensino/periodos/. Semestre is "2025.1"-style; strings of
// this shape sort lexicographically in chronological order.
type Period struct {
	ID       int64  `json:"id"`
	Semestre string `json:"semestre"`
}

// Profile maps GET /api/v2/minhas-informacoes/meus-dados/.
type Profile struct {
	NomeUsual      string   `json:"nome_usual"`
	Foto           string   `json:"foto"`
	FotoURL        string   `json:"url_foto_150x200,omitempty"`
	EmailAcademico string   `json:"email_academico"`
	Campus         string   `json:"campus"`
	Matricula      string   `json:"matricula,omitempty"`
	TipoVinculo    string   `json:"tipo_vinculo,omitempty"`
	Vinculo        *Vinculo `json:"vinculo,omitempty"`
}

type Vinculo struct {
	Curso     string `json:"curso"`
	Matricula string `json:"matricula"`
	Nome      string `json:"nome"`
	Turno     string `json:"turno"`
}

// StudentDetail maps GET /api/ensino/meus-dados-aluno/ (IRA, matriz, ingresso...).
type StudentDetail struct {
	Ingresso          string  `json:"ingresso"`
	EmailAcademico    string  `json:"email_academico"`
	EmailEscolar      string  `json:"email_escolar"`
	CPF               string  `json:"cpf"`
	PeriodoReferencia int     `json:"periodo_referencia"`
	IRA               string  `json:"ira"`
	Curso             string  `json:"curso"`
	Matriz            string  `json:"matriz"`
	QtdPeriodos       int     `json:"qtd_periodos"`
	Situacao          string  `json:"situacao"`
	DataMigracao      *string `json:"data_migracao"`
	ImpressaoDigital  bool    `json:"impressao_digital"`
	EmitiuDiploma     bool    `json:"emitiu_diploma"`
	Educasenso        *string `json:"educasenso"`
}

// Etapa holds one partial-stage cell of the boletim; both fields may be null
// when the stage has not been graded yet.
type Etapa struct {
	Nota   *FlexFloat `json:"nota"`
	Faltas *int       `json:"faltas"`
}

// Boletim is one subject row of GET /api/v2/minhas-informacoes/boletim/{ano}/{periodo}/.
type Boletim struct {
	CodigoDiario          string     `json:"codigo_diario"`
	Disciplina            string     `json:"disciplina"`
	CargaHoraria          int        `json:"carga_horaria"`
	CargaHorariaCumprida  int        `json:"carga_horaria_cumprida"`
	NumeroFaltas          int        `json:"numero_faltas"`
	Situacao              string     `json:"situacao"`
	NotaEtapa1            *Etapa     `json:"nota_etapa_1"`
	NotaEtapa2            *Etapa     `json:"nota_etapa_2"`
	NotaEtapa3            *Etapa     `json:"nota_etapa_3"`
	NotaEtapa4            *Etapa     `json:"nota_etapa_4"`
	MediaDisciplina       *FlexFloat `json:"media_disciplina"`
	NotaAvaliacaoFinal    *Etapa     `json:"nota_avaliacao_final"`
	MediaFinalDisciplina  *FlexFloat `json:"media_final_disciplina"`
	PercentualFrequentada float64    `json:"percentual_carga_horaria_frequentada"`
}

// Diario is one subject offering of GET /api/ensino/diarios/{semestre}/.
type Diario struct {
	ID          int64             `json:"id"`
	Disciplina  *DiarioDisciplina `json:"disciplina"`
	Professores []DiarioProfessor `json:"professores"`
	Horarios    []DiarioHorario   `json:"horarios"`
	Local       *DiarioLocal      `json:"local"`
}

type DiarioDisciplina struct {
	ID        int64  `json:"id"`
	Descricao string `json:"descricao"`
	Sigla     string `json:"sigla"`
}

type DiarioProfessor struct {
	ID        int64  `json:"id"`
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Email     string `json:"email"`
}

type DiarioHorario struct {
	Dia     string `json:"dia"`     // "Segunda", "Terça"...
	Horario string `json:"horario"` // "13:00 - 13:45"
}

type DiarioLocal struct {
	ID   int64  `json:"id"`
	Sala string `json:"sala"`
}

// CompletionCategory holds the credit-hour totals of one requisitos-conclusao bucket.
type CompletionCategory struct {
	Esperada int `json:"ch_esperada"`
	Cumprida int `json:"ch_cumprida"`
	Pendente int `json:"ch_pendente"`
}

// CompletionSummary maps GET /api/ensino/requisitos-conclusao/. Pass-through:
// the dashboard renders the buckets as-is.
type CompletionSummary struct {
	PercentualCumprida        float64             `json:"percentual_cumprida"`
	RegularesObrigatorios     *CompletionCategory `json:"regulares_obrigatorios,omitempty"`
	RegularesOptativos        *CompletionCategory `json:"regulares_optativos,omitempty"`
	Eletivos                  *CompletionCategory `json:"eletivos,omitempty"`
	Seminarios                *CompletionCategory `json:"seminarios,omitempty"`
	PraticaProfissional       *CompletionCategory `json:"pratica_profissional,omitempty"`
	PraticaEstagio            *CompletionCategory `json:"pratica_profissional_estagio,omitempty"`
	ExtensaoComponentes       *CompletionCategory `json:"extensao_componentes,omitempty"`
	ExtensaoOutrasAtividades  *CompletionCategory `json:"extensao_outras_atividades,omitempty"`
	ExtensaoOutrosComponentes *CompletionCategory `json:"extensao_outros_componentes,omitempty"`
	AtividadesAprofundamento  *CompletionCategory `json:"atividades_aprofundamento,omitempty"`
	AtividadesComplementares  *CompletionCategory `json:"atividades_complementares,omitempty"`
	TCC                       *CompletionCategory `json:"tcc,omitempty"`
	PraticaComponente         *CompletionCategory `json:"pratica_componente,omitempty"`
	VisitaTecnica             *CompletionCategory `json:"visita_tecnica,omitempty"`
	Totais                    *CompletionCategory `json:"totais,omitempty"`
}

// FlexFloat decodes both bare and quoted numbers; SUAP mixes them between
// media_disciplina and media_final_disciplina, and sends "" or "-" for
// not-yet-published scores. Valid is false for null and for the sentinel
// strings, so an ungraded stage is never confused with a real 0.0.
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" || s == "-" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		f.Value, f.Valid = v, true
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value, f.Valid = v, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
